package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/tuber/internal/registry"
	"github.com/desertthunder/tuber/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *registry.Registry {
	r := registry.New()
	r.Set("bbbb", "config", "lastfm", "data", "api_key")
	r.Set([]any{"a1", "b2"}, "entities", "playlist", "p1", "tracks")
	r.Set(float64(7), "entities", "playlist", "p1", "sequence")
	return r
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	s := NewFileStore(path)
	defer s.Close()

	t.Run("missing file loads empty", func(t *testing.T) {
		r := seeded()
		require.NoError(t, s.Load(r))
		assert.Empty(t, r.Data())
	})

	t.Run("round trip", func(t *testing.T) {
		r := seeded()
		require.NoError(t, s.Persist(r))

		loaded := registry.New()
		require.NoError(t, s.Load(loaded))
		assert.Equal(t, r.Data(), loaded.Data())
	})

	t.Run("malformed file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{oops"), 0644))
		err := s.Load(registry.New())
		assert.ErrorIs(t, err, shared.ErrMalformed)
	})

	t.Run("reset removes the document", func(t *testing.T) {
		require.NoError(t, s.Persist(seeded()))
		require.NoError(t, s.Reset())
		_, err := os.Stat(path)
		assert.ErrorIs(t, err, os.ErrNotExist)

		r := seeded()
		require.NoError(t, s.Load(r))
		assert.Empty(t, r.Data())

		require.NoError(t, s.Reset(), "reset of a missing file")
	})

	assert.Equal(t, "json:"+path, s.String())
}

func TestSQLiteStore(t *testing.T) {
	t.Run("empty database loads empty", func(t *testing.T) {
		s, err := NewSQLiteStore(":memory:")
		require.NoError(t, err)
		defer s.Close()

		r := seeded()
		require.NoError(t, s.Load(r))
		assert.Empty(t, r.Data())
	})

	t.Run("persist overwrites the document", func(t *testing.T) {
		s, err := NewSQLiteStore(":memory:")
		require.NoError(t, err)
		defer s.Close()

		r := seeded()
		require.NoError(t, s.Persist(r))
		r.Set("cccc", "config", "lastfm", "data", "api_key")
		require.NoError(t, s.Persist(r))

		var count int
		require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM registry_documents").Scan(&count))
		assert.Equal(t, 1, count)

		loaded := registry.New()
		require.NoError(t, s.Load(loaded))
		assert.Equal(t, r.Data(), loaded.Data())

		key, err := loaded.Get("config", "lastfm", "data", "api_key")
		require.NoError(t, err)
		assert.Equal(t, "cccc", key)
	})

	t.Run("file database survives reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "storage.db")

		s, err := NewSQLiteStore(path)
		require.NoError(t, err)
		r := seeded()
		require.NoError(t, s.Persist(r))
		require.NoError(t, s.Close())

		s, err = NewSQLiteStore(path)
		require.NoError(t, err)
		defer s.Close()

		loaded := registry.New()
		require.NoError(t, s.Load(loaded))
		assert.Equal(t, r.Data(), loaded.Data())
	})

	t.Run("reset empties the database", func(t *testing.T) {
		s, err := NewSQLiteStore(":memory:")
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.Persist(seeded()))
		require.NoError(t, s.Reset())

		r := seeded()
		require.NoError(t, s.Load(r))
		assert.Empty(t, r.Data())

		require.NoError(t, s.Persist(seeded()), "schema is usable after reset")
	})

	t.Run("malformed document", func(t *testing.T) {
		s, err := NewSQLiteStore(":memory:")
		require.NoError(t, err)
		defer s.Close()

		_, err = s.db.Exec("INSERT INTO registry_documents (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)", documentName, "[1, 2]")
		require.NoError(t, err)

		assert.ErrorIs(t, s.Load(registry.New()), shared.ErrMalformed)
	})
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		driver string
		path   string
		prefix string
		err    error
	}{
		{name: "json", driver: shared.DriverJSON, path: filepath.Join(dir, "s.json"), prefix: "json:"},
		{name: "sqlite", driver: shared.DriverSQLite, path: filepath.Join(dir, "s.db"), prefix: "sqlite:"},
		{name: "unknown", driver: "bolt", path: filepath.Join(dir, "s.bolt"), err: shared.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := shared.DefaultConfig()
			cfg.Storage.Driver = tt.driver
			cfg.Storage.Path = tt.path

			s, err := Open(cfg)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.Equal(t, tt.prefix+tt.path, s.String())
		})
	}
}
