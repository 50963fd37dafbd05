package repositories

import (
	"fmt"
	"strings"

	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/registry"
)

// PlaylistRepository stores playlists under "entities/playlist", identified by
// type, provider, arguments, limit and title.
//
// Only tracks, synced, uploaded and youtube_id change on an existing playlist.
type PlaylistRepository struct {
	*EntityRepository[models.Playlist, *models.Playlist]
	tracks *TrackRepository
}

// NewPlaylistRepository creates a new PlaylistRepository over the given registry.
//
// tracks resolves remote tracks to track ids during [PlaylistRepository.Sync].
func NewPlaylistRepository(r *registry.Registry, tracks *TrackRepository) *PlaylistRepository {
	return &PlaylistRepository{
		EntityRepository: newEntityRepository(r, contentID[*models.Playlist], entitiesRoot, playlistSpace),
		tracks:           tracks,
	}
}

// Sync replaces the playlist's track list with the given remote tracks.
//
// The remote list is capped at the playlist limit, each entry is stored via
// the track repository, and duplicate tracks collapse onto their first
// position. The previous list is discarded, not merged. Synced is stamped in
// the same write as the new list. Entries without an artist or name are
// skipped. If storing a track fails the playlist is left unchanged.
func (r *PlaylistRepository) Sync(playlist *models.Playlist, remote []models.RemoteTrack) (*models.Playlist, error) {
	if playlist.Limit > 0 && len(remote) > playlist.Limit {
		remote = remote[:playlist.Limit]
	}

	ids := make([]string, 0, len(remote))
	seen := make(map[string]bool, len(remote))
	for _, rt := range remote {
		if strings.TrimSpace(rt.Artist) == "" || strings.TrimSpace(rt.Name) == "" {
			continue
		}

		track, err := r.tracks.Set(&models.Track{Artist: rt.Artist, Name: rt.Name, Duration: rt.Duration})
		if err != nil {
			return nil, fmt.Errorf("sync playlist %s: %w", playlist.ID, err)
		}
		if seen[track.ID] {
			continue
		}
		seen[track.ID] = true
		ids = append(ids, track.ID)
	}

	now := r.now()
	return r.Update(playlist, func(p *models.Playlist) {
		p.Tracks = ids
		p.Synced = &now
	})
}
