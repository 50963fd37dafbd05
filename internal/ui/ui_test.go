package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor(t *testing.T) {
	t.Run("typing then saving", func(t *testing.T) {
		e := NewEditor("New playlist", "")
		e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Queen - Innuendo")})

		_, cmd := e.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.True(t, e.Saved())
		assert.Equal(t, "Queen - Innuendo", e.Value())
		assert.Empty(t, e.View())
	})

	t.Run("cancel", func(t *testing.T) {
		e := NewEditor("New playlist", EditorTemplate)

		_, cmd := e.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.False(t, e.Saved())
	})

	t.Run("template is kept", func(t *testing.T) {
		e := NewEditor("New playlist", EditorTemplate)
		assert.Equal(t, EditorTemplate, e.Value())
		assert.Contains(t, e.View(), "New playlist")
		assert.Contains(t, e.View(), "save")
	})

	t.Run("window resize", func(t *testing.T) {
		e := NewEditor("New playlist", "")
		_, cmd := e.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
		assert.Nil(t, cmd)
		assert.NotEmpty(t, e.View())
	})
}

type fakeEngine struct {
	result *tasks.SyncRunResult
	err    error
}

func (f *fakeEngine) Sync(ctx context.Context, playlists []*models.Playlist, progress chan<- tasks.ProgressUpdate) (*tasks.SyncRunResult, error) {
	for i := range playlists {
		progress <- tasks.ProgressUpdate{Phase: tasks.SyncPlaylist, Step: i + 1, Total: len(playlists), Message: "synced"}
	}
	return f.result, f.err
}

// blockingEngine runs until its context is cancelled.
type blockingEngine struct {
	started chan struct{}
}

func (b *blockingEngine) Sync(ctx context.Context, playlists []*models.Playlist, progress chan<- tasks.ProgressUpdate) (*tasks.SyncRunResult, error) {
	close(b.started)
	<-ctx.Done()
	return nil, ctx.Err()
}

// drive feeds each command's message back into the model until the run completes.
func drive(t *testing.T, m *SyncModel) {
	t.Helper()
	cmd := m.startSync()
	for range 100 {
		msg := cmd()
		_, cmd = m.Update(msg)
		if _, ok := msg.(syncCompleteMsg); ok {
			return
		}
	}
	t.Fatal("sync did not complete")
}

func TestSyncModel(t *testing.T) {
	playlists := []*models.Playlist{
		{Type: models.Chart, Provider: models.ProviderLastfm, Limit: 5},
		{Type: models.Tag, Provider: models.ProviderLastfm, Limit: 5, Arguments: map[string]string{"tag": "rock"}},
	}

	t.Run("success", func(t *testing.T) {
		engine := &fakeEngine{result: &tasks.SyncRunResult{
			RunID:     "run-1",
			Results:   []tasks.SyncResult{{Playlist: playlists[0]}, {Playlist: playlists[1]}},
			Succeeded: 2,
		}}
		m := NewSyncModel(context.Background(), engine, playlists)
		drive(t, m)

		assert.Equal(t, ResultView, m.view)
		assert.Len(t, m.log, 2)
		result, err := m.Result()
		require.NoError(t, err)
		assert.Equal(t, 2, result.Succeeded)
		assert.Contains(t, m.View(), "Sync Complete")
		assert.Contains(t, m.View(), "run-1")
	})

	t.Run("partial failure", func(t *testing.T) {
		engine := &fakeEngine{result: &tasks.SyncRunResult{
			Results: []tasks.SyncResult{
				{Playlist: playlists[0]},
				{Playlist: playlists[1], Err: errors.New("boom")},
			},
			Succeeded: 1,
			Failed:    1,
		}}
		m := NewSyncModel(context.Background(), engine, playlists)
		drive(t, m)

		view := m.View()
		assert.Contains(t, view, "1 failures")
		assert.Contains(t, view, "top_tracks_by_tag: boom")
	})

	t.Run("engine error", func(t *testing.T) {
		m := NewSyncModel(context.Background(), &fakeEngine{err: errors.New("no source")}, nil)
		drive(t, m)
		assert.True(t, strings.Contains(m.View(), "Sync failed: no source"))
	})

	t.Run("quit", func(t *testing.T) {
		m := NewSyncModel(context.Background(), &fakeEngine{}, nil)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("quit cancels a running sync", func(t *testing.T) {
		engine := &blockingEngine{started: make(chan struct{})}
		m := NewSyncModel(context.Background(), engine, playlists)
		cmd := m.startSync()
		<-engine.started

		_, quit := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, quit)
		assert.IsType(t, tea.QuitMsg{}, quit())

		for range 10 {
			msg := cmd()
			if done, ok := msg.(syncCompleteMsg); ok {
				assert.ErrorIs(t, done.err, context.Canceled)
				return
			}
			_, cmd = m.Update(msg)
		}
		t.Fatal("sync did not stop after quit")
	})

	t.Run("progress view", func(t *testing.T) {
		m := NewSyncModel(context.Background(), &fakeEngine{}, playlists)
		assert.Contains(t, m.View(), "Starting...")

		m.Update(progressUpdateMsg{Phase: tasks.FetchTracks, Step: 1, Total: 2})
		assert.Contains(t, m.View(), "1/2 playlists")
	})
}
