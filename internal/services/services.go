// package services defines interface TrackSource for fetching track lists from remote providers
//
// Last.fm
package services

import (
	"context"

	"github.com/desertthunder/tuber/internal/models"
)

// TrackSource defines the interface for providers that supply the track list of a playlist.
type TrackSource interface {
	// GetTracks fetches up to limit tracks for a playlist of the given type.
	// args holds the type's argument (username, country, tag or artist).
	GetTracks(ctx context.Context, playlistType models.PlaylistType, args map[string]string, limit int) ([]models.RemoteTrack, error)

	// Name returns the name of the provider (e.g., "Last.fm")
	Name() string
}
