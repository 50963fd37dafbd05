// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/tuber/internal/models"
)

// MockSource is a test double for [services.TrackSource]
//
// Tracks and Errors are keyed by the playlist's argument value, or by the
// playlist type when it takes no argument.
type MockSource struct {
	Tracks map[string][]models.RemoteTrack
	Errors map[string]error

	mu    sync.Mutex
	calls []string
}

func (m *MockSource) GetTracks(ctx context.Context, playlistType models.PlaylistType, args map[string]string, limit int) ([]models.RemoteTrack, error) {
	key := string(playlistType)
	if argKey, err := playlistType.ArgumentKey(); err == nil && argKey != "" {
		key = args[argKey]
	}

	m.mu.Lock()
	m.calls = append(m.calls, key)
	m.mu.Unlock()

	if err := m.Errors[key]; err != nil {
		return nil, err
	}
	if tracks, ok := m.Tracks[key]; ok {
		return tracks, nil
	}
	return nil, fmt.Errorf("mock source: no tracks for %q", key)
}

func (m *MockSource) Name() string { return "mock" }

// Calls returns the keys requested so far, in call order.
func (m *MockSource) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
