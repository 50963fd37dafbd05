// Package services defines the [TrackSource] interface for remote track providers and implements it for Last.fm.
//
// # TrackSource Interface
//
// Every remote playlist type is served by a TrackSource, so syncing works the
// same way regardless of where tracks come from.
//
// # Last.fm Implementation
//
// [LastfmService] wraps github.com/shkh/lastfm-go behind the [LastfmClient]
// interface. The API key is read from the provider config stored by
// `tuber lastfm setup`; no user authentication is involved.
//
// Requests are paced with a [rate.Limiter]. Friends' recent tracks issue one
// request per friend, so the limiter matters most there.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrMissingAPIKey] : no API key configured
//   - [shared.ErrAPIRequest] : the provider call failed
//   - [shared.ErrInvalidArgument] : playlist type not served by this provider
//   - [shared.ErrMissingArgument] : the type's argument is empty
package services
