package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/shared"
	"golang.org/x/time/rate"
)

// LastfmService implements [TrackSource] for every Last.fm playlist type.
type LastfmService struct {
	client  LastfmClient
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewLastfmService creates a [LastfmService] that paces calls to client per cfg.
func NewLastfmService(client LastfmClient, cfg shared.LastfmConfig, logger *log.Logger) *LastfmService {
	if logger == nil {
		logger = log.Default()
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := max(cfg.Burst, 1)

	return &LastfmService{
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
		logger:  shared.WithLogger(logger, "service", "lastfm"),
	}
}

// NewLastfmServiceFromConfig builds the service from the stored provider config.
//
// Returns [shared.ErrMissingAPIKey] when cfg is nil or carries no api_key.
func NewLastfmServiceFromConfig(cfg *models.Config, pacing shared.LastfmConfig, logger *log.Logger) (*LastfmService, error) {
	if cfg == nil || cfg.Data["api_key"] == "" {
		return nil, fmt.Errorf("%w: run `tuber lastfm setup` first", shared.ErrMissingAPIKey)
	}
	return NewLastfmService(NewLastfmClient(cfg.Data["api_key"]), pacing, logger), nil
}

func (s *LastfmService) Name() string { return "Last.fm" }

// GetTracks fetches up to limit tracks for a Last.fm playlist type.
func (s *LastfmService) GetTracks(ctx context.Context, playlistType models.PlaylistType, args map[string]string, limit int) ([]models.RemoteTrack, error) {
	key, err := playlistType.ArgumentKey()
	if err != nil {
		return nil, err
	}
	arg := args[key]
	if key != "" && arg == "" {
		return nil, fmt.Errorf("%w: %s requires %q", shared.ErrMissingArgument, playlistType, key)
	}

	s.logger.Debug("fetching tracks", "type", playlistType, "argument", arg, "limit", limit)

	var tracks []models.RemoteTrack
	switch playlistType {
	case models.UserLovedTracks:
		tracks, err = call(ctx, s, func() ([]models.RemoteTrack, error) { return s.client.LovedTracks(arg, limit) })
	case models.UserTopTracks:
		tracks, err = call(ctx, s, func() ([]models.RemoteTrack, error) { return s.client.TopTracks(arg, limit) })
	case models.UserRecentTracks:
		tracks, err = call(ctx, s, func() ([]models.RemoteTrack, error) { return s.client.RecentTracks(arg, limit) })
	case models.UserFriendsRecentTracks:
		tracks, err = s.friendsRecentTracks(ctx, arg, limit)
	case models.Chart:
		tracks, err = call(ctx, s, func() ([]models.RemoteTrack, error) { return s.client.ChartTopTracks(limit) })
	case models.Country:
		tracks, err = call(ctx, s, func() ([]models.RemoteTrack, error) { return s.client.CountryTopTracks(arg, limit) })
	case models.Tag:
		tracks, err = call(ctx, s, func() ([]models.RemoteTrack, error) { return s.client.TagTopTracks(arg, limit) })
	case models.Artist:
		tracks, err = call(ctx, s, func() ([]models.RemoteTrack, error) { return s.client.ArtistTopTracks(arg, limit) })
	case models.Editor:
		return nil, fmt.Errorf("%w: %s playlists are not fetched from Last.fm", shared.ErrInvalidArgument, playlistType)
	default:
		return nil, fmt.Errorf("%w: playlist type %q", shared.ErrInvalidArgument, string(playlistType))
	}
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(tracks) > limit {
		tracks = tracks[:limit]
	}
	s.logger.Debug("fetched tracks", "type", playlistType, "count", len(tracks))
	return tracks, nil
}

// friendsRecentTracks takes the most recent track of each of the user's friends.
func (s *LastfmService) friendsRecentTracks(ctx context.Context, user string, limit int) ([]models.RemoteTrack, error) {
	friends, err := call(ctx, s, func() ([]string, error) { return s.client.Friends(user, limit) })
	if err != nil {
		return nil, err
	}

	tracks := make([]models.RemoteTrack, 0, len(friends))
	for _, friend := range friends {
		if limit > 0 && len(tracks) >= limit {
			break
		}

		recent, err := call(ctx, s, func() ([]models.RemoteTrack, error) { return s.client.RecentTracks(friend, 1) })
		if err != nil {
			return nil, fmt.Errorf("recent tracks of friend %s: %w", friend, err)
		}
		if len(recent) > 0 {
			tracks = append(tracks, recent[0])
		}
	}
	return tracks, nil
}

// call waits for the limiter before invoking fn.
func call[T any](ctx context.Context, s *LastfmService, fn func() (T, error)) (T, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		var zero T
		return zero, err
	}
	return fn()
}
