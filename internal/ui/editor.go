package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tuber/internal/shared"
)

// EditorTemplate is the initial text of the track list editor.
const EditorTemplate = "\n\n# Copy/Paste your track list and hit save!\n" +
	"# One line per track, make sure it doesn't start with a #\n" +
	"# Separate the track artist and title with a single dash `-`\n"

// Editor is a full-screen text area for composing a track list.
type Editor struct {
	title    string
	textarea textarea.Model
	help     help.Model
	keys     editorKeys
	saved    bool
	done     bool
}

// NewEditor creates an [Editor] pre-filled with initial.
func NewEditor(title, initial string) *Editor {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.ShowLineNumbers = true
	ta.SetWidth(80)
	ta.SetHeight(20)
	ta.SetValue(initial)
	ta.Focus()

	return &Editor{
		title:    title,
		textarea: ta,
		help:     help.New(),
		keys:     newEditorKeys(),
	}
}

func (e *Editor) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles incoming messages and updates the editor state.
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.textarea.SetWidth(max(msg.Width-4, 20))
		e.textarea.SetHeight(max(msg.Height-6, 5))
		return e, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, e.keys.save):
			e.saved, e.done = true, true
			return e, tea.Quit
		case key.Matches(msg, e.keys.cancel):
			e.done = true
			return e, tea.Quit
		}
	}

	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return e, cmd
}

// View renders the title, the text area and the key help.
func (e *Editor) View() string {
	if e.done {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n\n%s",
		styles.title.Render(e.title),
		e.textarea.View(),
		styles.help.Render(e.help.ShortHelpView(e.keys.ShortHelp())),
	)
}

// Value returns the current text.
func (e *Editor) Value() string { return e.textarea.Value() }

// Saved reports whether the user saved instead of cancelling.
func (e *Editor) Saved() bool { return e.saved }

// RunEditor opens an [Editor] on the given terminal streams and returns the saved text.
//
// Cancelling returns [shared.ErrAborted].
func RunEditor(title, initial string, in io.Reader, out io.Writer) (string, error) {
	editor := NewEditor(title, initial)

	opts := []tea.ProgramOption{tea.WithInput(in), tea.WithOutput(out)}
	if _, err := tea.NewProgram(editor, opts...).Run(); err != nil {
		return "", fmt.Errorf("editor failed: %w", err)
	}
	if !editor.Saved() {
		return "", fmt.Errorf("%w: editor closed without saving", shared.ErrAborted)
	}
	return editor.Value(), nil
}
