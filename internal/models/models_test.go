package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/tuber/internal/shared"
)

func TestPlaylistType(t *testing.T) {
	t.Run("every type has a provider and argument key", func(t *testing.T) {
		for _, pt := range PlaylistTypes {
			if _, err := pt.Provider(); err != nil {
				t.Errorf("%s: unexpected provider error: %v", pt, err)
			}
			if _, err := pt.ArgumentKey(); err != nil {
				t.Errorf("%s: unexpected argument key error: %v", pt, err)
			}
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		pt := PlaylistType("top_tracks_by_mood")
		if err := pt.Validate(); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if pt.Remote() {
			t.Error("unknown type should not be remote")
		}
	})

	t.Run("argument keys", func(t *testing.T) {
		tc := map[PlaylistType]string{
			UserTopTracks: "username",
			Country:       "country",
			Tag:           "tag",
			Artist:        "artist",
			Chart:         "",
			Editor:        "",
		}
		for pt, want := range tc {
			got, _ := pt.ArgumentKey()
			if got != want {
				t.Errorf("%s.ArgumentKey() = %q, want %q", pt, got, want)
			}
		}
	})
}

func TestPlaylistValidate(t *testing.T) {
	tc := []struct {
		name     string
		playlist Playlist
		wantErr  error
	}{
		{
			name:     "chart",
			playlist: Playlist{Type: Chart, Provider: ProviderLastfm, Limit: 50},
		},
		{
			name:     "editor without limit",
			playlist: Playlist{Type: Editor, Provider: ProviderUser, Title: "Mine"},
		},
		{
			name:     "country missing argument",
			playlist: Playlist{Type: Country, Provider: ProviderLastfm, Limit: 10},
			wantErr:  shared.ErrMissingArgument,
		},
		{
			name:     "remote without limit",
			playlist: Playlist{Type: Tag, Provider: ProviderLastfm, Arguments: map[string]string{"tag": "rock"}},
			wantErr:  shared.ErrInvalidInput,
		},
		{
			name:     "provider mismatch",
			playlist: Playlist{Type: Editor, Provider: ProviderLastfm},
			wantErr:  shared.ErrInvalidInput,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.playlist.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTrackValidate(t *testing.T) {
	negative := -1
	if err := (&Track{Artist: "Queen"}).Validate(); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing name, got %v", err)
	}
	if err := (&Track{Artist: "Queen", Name: "Bohemian Rhapsody", Duration: &negative}).Validate(); err == nil {
		t.Error("expected error for negative duration")
	}
	if err := (&Track{Artist: "Queen", Name: "Bohemian Rhapsody"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPlaylistJSON(t *testing.T) {
	synced := time.Date(2019, 1, 5, 22, 28, 0, 0, time.UTC)
	p := Playlist{
		Record:   Record{ID: "abc", Sequence: 2},
		Type:     Chart,
		Provider: ProviderLastfm,
		Limit:    10,
		Synced:   &synced,
	}

	data, err := json.Marshal(&p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, absent := range []string{"modified", "uploaded", "tracks", "arguments", "youtube_id"} {
		if _, ok := fields[absent]; ok {
			t.Errorf("expected %q to be omitted, got %v", absent, fields[absent])
		}
	}
	if fields["id"] != "abc" || fields["type"] != "top_tracks" {
		t.Errorf("unexpected encoding: %s", data)
	}
}
