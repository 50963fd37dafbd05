package models

import (
	"fmt"
	"slices"

	"github.com/desertthunder/tuber/internal/shared"
)

// Provider identifies where a playlist's tracks come from.
type Provider string

const (
	ProviderUser   Provider = "user"
	ProviderLastfm Provider = "lastfm"
)

// Providers lists every known provider.
var Providers = []Provider{ProviderUser, ProviderLastfm}

// Validate reports unknown providers.
func (p Provider) Validate() error {
	if !slices.Contains(Providers, p) {
		return fmt.Errorf("%w: %q", shared.ErrUnknownProvider, string(p))
	}
	return nil
}

func (p Provider) String() string { return string(p) }

// PlaylistType enumerates the kinds of playlist that can be created.
type PlaylistType string

const (
	UserLovedTracks         PlaylistType = "user_loved_tracks"
	UserTopTracks           PlaylistType = "user_top_tracks"
	UserRecentTracks        PlaylistType = "user_recent_tracks"
	UserFriendsRecentTracks PlaylistType = "user_friends_recent_tracks"
	Chart                   PlaylistType = "top_tracks"
	Country                 PlaylistType = "top_tracks_by_country"
	Tag                     PlaylistType = "top_tracks_by_tag"
	Artist                  PlaylistType = "top_tracks_by_artist"
	Editor                  PlaylistType = "editor"
)

// PlaylistTypes lists every playlist type in menu order.
var PlaylistTypes = []PlaylistType{
	UserLovedTracks, UserTopTracks, UserRecentTracks, UserFriendsRecentTracks,
	Chart, Country, Tag, Artist, Editor,
}

// UserPlaylistTypes are the types driven by a Last.fm username.
var UserPlaylistTypes = []PlaylistType{
	UserLovedTracks, UserTopTracks, UserRecentTracks, UserFriendsRecentTracks,
}

func (t PlaylistType) String() string { return string(t) }

// Provider returns the provider that owns playlists of this type.
func (t PlaylistType) Provider() (Provider, error) {
	switch t {
	case UserLovedTracks, UserTopTracks, UserRecentTracks, UserFriendsRecentTracks,
		Chart, Country, Tag, Artist:
		return ProviderLastfm, nil
	case Editor:
		return ProviderUser, nil
	default:
		return "", fmt.Errorf("%w: playlist type %q", shared.ErrInvalidArgument, string(t))
	}
}

// ArgumentKey returns the name of the single argument the type requires, or
// "" when it takes none.
func (t PlaylistType) ArgumentKey() (string, error) {
	switch t {
	case UserLovedTracks, UserTopTracks, UserRecentTracks, UserFriendsRecentTracks:
		return "username", nil
	case Country:
		return "country", nil
	case Tag:
		return "tag", nil
	case Artist:
		return "artist", nil
	case Chart, Editor:
		return "", nil
	default:
		return "", fmt.Errorf("%w: playlist type %q", shared.ErrInvalidArgument, string(t))
	}
}

// Remote reports whether tracks for this type are fetched from a provider.
func (t PlaylistType) Remote() bool {
	p, err := t.Provider()
	return err == nil && p != ProviderUser
}

// Validate checks that the type is known.
func (t PlaylistType) Validate() error {
	_, err := t.Provider()
	return err
}
