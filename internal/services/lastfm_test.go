package services

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records calls and returns canned tracks named after the method.
type fakeClient struct {
	calls   []string
	friends []string
	err     error
	size    int
}

func (f *fakeClient) tracks(method, arg string, limit int) ([]models.RemoteTrack, error) {
	f.calls = append(f.calls, fmt.Sprintf("%s(%s,%d)", method, arg, limit))
	if f.err != nil {
		return nil, f.err
	}
	size := f.size
	if size == 0 {
		size = limit
	}
	out := make([]models.RemoteTrack, 0, size)
	for i := range size {
		out = append(out, models.RemoteTrack{Artist: arg, Name: fmt.Sprintf("%s %d", method, i)})
	}
	return out, nil
}

func (f *fakeClient) LovedTracks(user string, limit int) ([]models.RemoteTrack, error) {
	return f.tracks("loved", user, limit)
}

func (f *fakeClient) TopTracks(user string, limit int) ([]models.RemoteTrack, error) {
	return f.tracks("top", user, limit)
}

func (f *fakeClient) RecentTracks(user string, limit int) ([]models.RemoteTrack, error) {
	return f.tracks("recent", user, limit)
}

func (f *fakeClient) Friends(user string, limit int) ([]string, error) {
	f.calls = append(f.calls, fmt.Sprintf("friends(%s,%d)", user, limit))
	return f.friends, f.err
}

func (f *fakeClient) ChartTopTracks(limit int) ([]models.RemoteTrack, error) {
	return f.tracks("chart", "", limit)
}

func (f *fakeClient) CountryTopTracks(country string, limit int) ([]models.RemoteTrack, error) {
	return f.tracks("country", country, limit)
}

func (f *fakeClient) TagTopTracks(tag string, limit int) ([]models.RemoteTrack, error) {
	return f.tracks("tag", tag, limit)
}

func (f *fakeClient) ArtistTopTracks(artist string, limit int) ([]models.RemoteTrack, error) {
	return f.tracks("artist", artist, limit)
}

func newTestService(client LastfmClient) *LastfmService {
	return NewLastfmService(client, shared.LastfmConfig{}, log.New(io.Discard))
}

func TestLastfmService(t *testing.T) {
	t.Run("GetTracks dispatches by type", func(t *testing.T) {
		tests := []struct {
			playlistType models.PlaylistType
			args         map[string]string
			call         string
		}{
			{models.UserLovedTracks, map[string]string{"username": "rj"}, "loved(rj,3)"},
			{models.UserTopTracks, map[string]string{"username": "rj"}, "top(rj,3)"},
			{models.UserRecentTracks, map[string]string{"username": "rj"}, "recent(rj,3)"},
			{models.Chart, nil, "chart(,3)"},
			{models.Country, map[string]string{"country": "greece"}, "country(greece,3)"},
			{models.Tag, map[string]string{"tag": "rock"}, "tag(rock,3)"},
			{models.Artist, map[string]string{"artist": "Queen"}, "artist(Queen,3)"},
		}

		for _, tt := range tests {
			t.Run(tt.playlistType.String(), func(t *testing.T) {
				client := &fakeClient{}
				tracks, err := newTestService(client).GetTracks(context.Background(), tt.playlistType, tt.args, 3)
				require.NoError(t, err)
				assert.Len(t, tracks, 3)
				assert.Equal(t, []string{tt.call}, client.calls)
			})
		}
	})

	t.Run("GetTracks caps oversized responses", func(t *testing.T) {
		client := &fakeClient{size: 10}
		tracks, err := newTestService(client).GetTracks(context.Background(), models.Chart, nil, 4)
		require.NoError(t, err)
		assert.Len(t, tracks, 4)
	})

	t.Run("friends recent tracks", func(t *testing.T) {
		client := &fakeClient{friends: []string{"a", "b", "c"}, size: 2}
		tracks, err := newTestService(client).GetTracks(
			context.Background(), models.UserFriendsRecentTracks, map[string]string{"username": "rj"}, 2,
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"friends(rj,2)", "recent(a,1)", "recent(b,1)"}, client.calls)
		require.Len(t, tracks, 2)
		assert.Equal(t, "a", tracks[0].Artist)
		assert.Equal(t, "recent 0", tracks[0].Name)
		assert.Equal(t, "b", tracks[1].Artist)
	})

	t.Run("missing argument", func(t *testing.T) {
		client := &fakeClient{}
		_, err := newTestService(client).GetTracks(context.Background(), models.Tag, map[string]string{}, 3)
		assert.ErrorIs(t, err, shared.ErrMissingArgument)
		assert.Empty(t, client.calls)
	})

	t.Run("editor playlists are not remote", func(t *testing.T) {
		_, err := newTestService(&fakeClient{}).GetTracks(context.Background(), models.Editor, nil, 3)
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := newTestService(&fakeClient{}).GetTracks(context.Background(), "top_albums", nil, 3)
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})

	t.Run("client errors pass through", func(t *testing.T) {
		boom := fmt.Errorf("%w: chart.getTopTracks: boom", shared.ErrAPIRequest)
		_, err := newTestService(&fakeClient{err: boom}).GetTracks(context.Background(), models.Chart, nil, 3)
		assert.ErrorIs(t, err, shared.ErrAPIRequest)
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := &fakeClient{}
		svc := NewLastfmService(client, shared.LastfmConfig{RequestsPerSecond: 0.001, Burst: 1}, log.New(io.Discard))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.GetTracks(ctx, models.Chart, nil, 3)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, client.calls)
	})

	t.Run("Name", func(t *testing.T) {
		assert.Equal(t, "Last.fm", newTestService(&fakeClient{}).Name())
	})
}

func TestNewLastfmServiceFromConfig(t *testing.T) {
	t.Run("missing config", func(t *testing.T) {
		_, err := NewLastfmServiceFromConfig(nil, shared.LastfmConfig{}, nil)
		assert.ErrorIs(t, err, shared.ErrMissingAPIKey)
	})

	t.Run("empty key", func(t *testing.T) {
		cfg := &models.Config{Provider: models.ProviderLastfm, Data: map[string]string{}}
		_, err := NewLastfmServiceFromConfig(cfg, shared.LastfmConfig{}, nil)
		assert.ErrorIs(t, err, shared.ErrMissingAPIKey)
	})

	t.Run("with key", func(t *testing.T) {
		cfg := &models.Config{Provider: models.ProviderLastfm, Data: map[string]string{"api_key": "aaaa"}}
		svc, err := NewLastfmServiceFromConfig(cfg, shared.LastfmConfig{RequestsPerSecond: 4, Burst: 1}, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"354", func() *int { v := 354; return &v }()},
		{"0", nil},
		{"", nil},
		{"abc", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseDuration(tt.in), tt.in)
	}
}
