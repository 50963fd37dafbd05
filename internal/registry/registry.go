package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/desertthunder/tuber/internal/shared"
)

// Registry is a nested mapping from string keys to values or further mappings.
type Registry struct {
	mu   sync.RWMutex
	data map[string]any
}

// New returns an empty [Registry].
func New() *Registry {
	return &Registry{data: map[string]any{}}
}

// Get returns the value stored at keys.
//
// The result shares structure with the registry; treat it as read-only.
func (r *Registry) Get(keys ...string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var node any = r.data
	for i, key := range keys {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, joinPath(keys[:i+1]))
		}
		if node, ok = m[key]; !ok {
			return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, joinPath(keys[:i+1]))
		}
	}
	return node, nil
}

// Set writes value at keys, creating intermediate mappings along the way.
//
// Whatever was previously stored at the terminal key is replaced, subtrees
// included. An intermediate key holding a leaf is replaced by a new mapping.
// Set with no keys is a no-op.
func (r *Registry) Set(value any, keys ...string) {
	if len(keys) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.data
	for _, key := range keys[:len(keys)-1] {
		next, ok := node[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[key] = next
		}
		node = next
	}
	node[keys[len(keys)-1]] = value
}

// Clear resets the registry to an empty mapping.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = map[string]any{}
}

// Data returns a deep copy of the whole document.
func (r *Registry) Data() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return deepCopy(r.data).(map[string]any)
}

// MarshalJSON encodes the document as a JSON object.
func (r *Registry) MarshalJSON() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return json.Marshal(r.data)
}

// UnmarshalJSON replaces the document with the JSON object in data.
//
// Anything other than a JSON object is reported as [shared.ErrMalformed] and
// leaves the current state untouched.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformed, err)
	}
	if doc == nil {
		return fmt.Errorf("%w: top level is not an object", shared.ErrMalformed)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = doc
	return nil
}

// Load replaces the in-memory state with the JSON document at path.
//
// A missing file yields an empty registry.
func (r *Registry) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		r.Clear()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := r.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w (%s)", err, path)
	}
	return nil
}

// Persist writes the document to path, replacing any existing file.
//
// Parent directories are created as needed. The file is swapped in with a
// rename and is never observed half-written.
func (r *Registry) Persist(path string) error {
	r.mu.RLock()
	data, err := json.MarshalIndent(r.data, "", "  ")
	r.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}

	w, err := NewAtomicWriter(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		w.Abort()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return w.Commit()
}

func joinPath(keys []string) string {
	return strings.Join(keys, ".")
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}
