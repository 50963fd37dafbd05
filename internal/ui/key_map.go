package ui

import "github.com/charmbracelet/bubbles/key"

// editorKeys defines the [key.Binding] mapping for the playlist editor.
type editorKeys struct {
	save   key.Binding
	cancel key.Binding
}

func newEditorKeys() editorKeys {
	return editorKeys{
		save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

func (k editorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.save, k.cancel}
}

func (k editorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// syncKeys defines the [key.Binding] mapping for the sync progress view.
type syncKeys struct {
	quit key.Binding
}

func newSyncKeys() syncKeys {
	return syncKeys{
		quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k syncKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k syncKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
