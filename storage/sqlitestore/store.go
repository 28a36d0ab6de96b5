// Package sqlitestore persists client state in a local SQLite file.
package sqlitestore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync/atomic"

	crmerrors "github.com/jrsteele09/go-crm-workspace/internal/errors"
	"github.com/jrsteele09/go-crm-workspace/storage"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	db     *sql.DB
	closed atomic.Bool
}

// Open creates the database file (and its folder) if needed and migrates it.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrap(err, "[sqlitestore.Open] create data folder")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "[sqlitestore.Open] open")
	}
	db.SetMaxOpenConns(1)

	s, err := New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing database handle.
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, errors.Wrap(err, "[sqlitestore.New] migrate")
	}
	return s, nil
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := s.db.ExecContext(context.Background(), query)
	return err
}

func (s *Store) Get(key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, crmerrors.ErrStorageClosed
	}
	var value string
	err := s.db.QueryRowContext(context.Background(), `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "[sqlitestore.Get] %s", key)
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	if s.closed.Load() {
		return crmerrors.ErrStorageClosed
	}
	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	return errors.Wrapf(err, "[sqlitestore.Set] %s", key)
}

func (s *Store) Remove(key string) error {
	if s.closed.Load() {
		return crmerrors.ErrStorageClosed
	}
	_, err := s.db.ExecContext(context.Background(), `DELETE FROM kv WHERE key = ?`, key)
	return errors.Wrapf(err, "[sqlitestore.Remove] %s", key)
}

// Close is safe to call more than once.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}
