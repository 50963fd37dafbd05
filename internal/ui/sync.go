package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/tasks"
)

// ViewState represents the current view of the sync screen.
type ViewState int

const (
	SyncView ViewState = iota
	ResultView
)

type progressUpdateMsg tasks.ProgressUpdate

type syncCompleteMsg struct {
	result *tasks.SyncRunResult
	err    error
}

// SyncModel shows live progress of a [tasks.SyncEngine] run.
type SyncModel struct {
	ctx          context.Context
	cancel       context.CancelFunc
	view         ViewState
	engine       tasks.SyncEngine
	playlists    []*models.Playlist
	progressChan chan tasks.ProgressUpdate
	done         chan syncCompleteMsg
	progress     tasks.ProgressUpdate
	log          []string
	result       *tasks.SyncRunResult
	err          error
	spinner      spinner.Model
	help         help.Model
	keys         syncKeys
}

// NewSyncModel creates a new sync view for the given playlists.
//
// Quitting the view cancels the run's context.
func NewSyncModel(ctx context.Context, engine tasks.SyncEngine, playlists []*models.Playlist) *SyncModel {
	ctx, cancel := context.WithCancel(ctx)
	return &SyncModel{
		ctx:       ctx,
		cancel:    cancel,
		view:      SyncView,
		engine:    engine,
		playlists: playlists,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
		keys:      newSyncKeys(),
	}
}

// Init starts the sync and the spinner.
func (m *SyncModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startSync())
}

// Update handles incoming messages and updates the model state.
func (m *SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		if m.progress.Phase == tasks.SyncPlaylist || m.progress.Phase == tasks.SyncFailed {
			m.log = append(m.log, m.progress.Message)
		}
		return m, m.waitForProgress()

	case syncCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *SyncModel) View() string {
	switch m.view {
	case SyncView:
		return m.renderSync()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

// Result returns the finished run, or nil while it is still in progress.
func (m *SyncModel) Result() (*tasks.SyncRunResult, error) {
	return m.result, m.err
}

func (m *SyncModel) startSync() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 2*len(m.playlists)+1)
	done := make(chan syncCompleteMsg, 1)

	go func() {
		result, err := m.engine.Sync(m.ctx, m.playlists, m.progressChan)
		done <- syncCompleteMsg{result: result, err: err}
		close(m.progressChan)
	}()

	m.done = done
	return m.waitForProgress()
}

func (m *SyncModel) waitForProgress() tea.Cmd {
	ch, done := m.progressChan, m.done
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return <-done
		}
		return progressUpdateMsg(update)
	}
}

func (m *SyncModel) renderSync() string {
	title := styles.title.Render("Syncing Playlists")

	status := "Starting..."
	if m.progress.Total > 0 {
		status = fmt.Sprintf("%d/%d playlists", m.progress.Step, m.progress.Total)
	}

	return fmt.Sprintf("%s\n%s %s\n%s\n\n%s",
		title,
		m.spinner.View(), status,
		strings.Join(m.log, "\n"),
		styles.help.Render(m.help.ShortHelpView(m.keys.ShortHelp())),
	)
}

func (m *SyncModel) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Sync failed: %v\n\nPress q to quit", m.err))
	}
	if m.result == nil {
		return styles.err.Render("No result available\n\nPress q to quit")
	}

	var title string
	if m.result.Failed == 0 {
		title = styles.ok.Render("✓ Sync Complete!")
	} else {
		title = styles.warn.Render(fmt.Sprintf("Sync finished with %d failures", m.result.Failed))
	}

	info := fmt.Sprintf("\nRun: %s\nSynced: %d/%d", m.result.RunID, m.result.Succeeded, len(m.result.Results))

	var failed string
	for _, r := range m.result.Results {
		if r.Err != nil {
			failed += fmt.Sprintf("\n  • %s: %v", r.Playlist.DisplayTitle(), r.Err)
		}
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, styles.help.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
}
