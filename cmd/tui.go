package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/shared"
	"github.com/desertthunder/tuber/internal/tasks"
	"github.com/desertthunder/tuber/internal/ui"
)

// logToFile redirects the runner's logger to the state log file so it does
// not interfere with TUI rendering. The returned func restores the logger.
func (r *Runner) logToFile() (func(), error) {
	fileLogger, closer, err := shared.NewFileLogger("")
	if err != nil {
		return nil, err
	}
	fileLogger.SetLevel(r.logger.GetLevel())

	previous := r.logger
	r.logger = fileLogger
	return func() {
		r.logger = previous
		closer.Close()
	}, nil
}

// syncTUI runs the engine behind the interactive progress view.
func (r *Runner) syncTUI(ctx context.Context, engine tasks.SyncEngine, playlists []*models.Playlist) (*tasks.SyncRunResult, error) {
	model := ui.NewSyncModel(ctx, engine, playlists)
	if _, err := tea.NewProgram(model, tea.WithOutput(r.output)).Run(); err != nil {
		return nil, fmt.Errorf("error running TUI: %w", err)
	}

	result, err := model.Result()
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%w: sync view closed before the run finished", shared.ErrAborted)
	}
	return result, nil
}
