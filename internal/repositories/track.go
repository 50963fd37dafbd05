package repositories

import (
	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/registry"
)

// TrackRepository stores tracks under "entities/track", identified by artist and name.
//
// Duration and YouTubeID are not part of the identity: setting a known track
// with a new duration updates the existing record.
type TrackRepository struct {
	*EntityRepository[models.Track, *models.Track]
}

// NewTrackRepository creates a new TrackRepository over the given registry
func NewTrackRepository(r *registry.Registry) *TrackRepository {
	return &TrackRepository{newEntityRepository(r, contentID[*models.Track], entitiesRoot, trackSpace)}
}

// GetMany resolves ids in order. It stops at the first id that is not found.
func (r *TrackRepository) GetMany(ids []string) ([]*models.Track, error) {
	tracks := make([]*models.Track, 0, len(ids))
	for _, id := range ids {
		track, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}
