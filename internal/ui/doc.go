// Package ui implements interactive terminal views using bubbletea's Elm architecture.
//
// Two programs are provided:
//  1. [Editor] : a text area for composing a track list, one "Artist - Track" per line
//  2. [SyncModel] : live progress of a playlist sync run, then a result summary
//
// Both models implement bubbletea's standard Init/Update/View pattern.
// Sync progress flows through a channel from the PlaylistEngine, providing non-blocking status reporting.
//
// Key bindings are declared with charmbracelet/bubbles/key and displayed via charmbracelet/bubbles/help.
package ui
