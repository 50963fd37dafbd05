// package store selects where the registry document is kept between runs.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/tuber/internal/registry"
	"github.com/desertthunder/tuber/internal/shared"
)

// Store loads and persists the whole registry document.
type Store interface {
	Load(r *registry.Registry) error    // Load replaces r's state with the stored document
	Persist(r *registry.Registry) error // Persist saves r's state
	Reset() error                       // Reset discards the stored document
	Close() error                       // Close releases the backend
	String() string                     // String describes the location for logs
}

// Open returns the store selected by cfg.
func Open(cfg *shared.Config) (Store, error) {
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}

	switch cfg.Storage.Driver {
	case shared.DriverJSON:
		return NewFileStore(path), nil
	case shared.DriverSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", shared.ErrInvalidConfig, cfg.Storage.Driver)
	}
}

// FileStore keeps the registry as a JSON document on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a [FileStore] for the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(r *registry.Registry) error    { return r.Load(s.path) }
func (s *FileStore) Persist(r *registry.Registry) error { return r.Persist(s.path) }
func (s *FileStore) Close() error                       { return nil }
func (s *FileStore) String() string                     { return "json:" + s.path }

// Reset removes the document file. A missing file is not an error.
func (s *FileStore) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", s.path, err)
	}
	return nil
}

const documentName = "registry"

// SQLiteStore keeps the registry document in a single row of a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewSQLiteStore opens the database at path and applies pending migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, path: path, now: time.Now}, nil
}

// Load reads the stored document; an empty table yields an empty registry.
func (s *SQLiteStore) Load(r *registry.Registry) error {
	var data string
	err := s.db.QueryRow("SELECT data FROM registry_documents WHERE name = ?", documentName).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		r.Clear()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read registry document: %w", err)
	}

	if err := r.UnmarshalJSON([]byte(data)); err != nil {
		return fmt.Errorf("%w (%s)", err, s)
	}
	return nil
}

// Persist upserts the document row.
func (s *SQLiteStore) Persist(r *registry.Registry) error {
	data, err := r.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO registry_documents (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, documentName, string(data), s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write registry document: %w", err)
	}
	return nil
}

// Reset rolls back every migration and reapplies them, leaving empty tables.
func (s *SQLiteStore) Reset() error {
	if err := shared.RollbackMigrations(s.db); err != nil {
		return err
	}
	return shared.RunMigrations(s.db)
}

func (s *SQLiteStore) Close() error   { return s.db.Close() }
func (s *SQLiteStore) String() string { return "sqlite:" + s.path }
