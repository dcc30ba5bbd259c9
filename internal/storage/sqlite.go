package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/conn-castle/gradebook/internal/messages"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteKV keeps keys in a single SQLite table.
type SQLiteKV struct {
	db   *sql.DB
	path string
}

// NewSQLiteKV opens (or creates) the database at path.
func NewSQLiteKV(path string) (*SQLiteKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf(messages.StorageCreateDirFmt, filepath.Dir(path), err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf(messages.StorageOpenDBFmt, path, err)
	}
	// One connection keeps writes serialized and avoids SQLITE_BUSY within a process.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(kvSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf(messages.StorageInitDBFmt, err)
	}
	return &SQLiteKV{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteKV) Path() string {
	return s.path
}

// Get reads key.
func (s *SQLiteKV) Get(key string) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, errors.New(messages.StorageClosed)
	}
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf(messages.StorageReadFmt, key, err)
	}
	return value, true, nil
}

// Set upserts key.
func (s *SQLiteKV) Set(key string, value []byte) error {
	if s.db == nil {
		return errors.New(messages.StorageClosed)
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf(messages.StorageWriteFmt, key, err)
	}
	return nil
}

// Delete removes key.
func (s *SQLiteKV) Delete(key string) error {
	if s.db == nil {
		return errors.New(messages.StorageClosed)
	}
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf(messages.StorageDeleteFmt, key, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteKV) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
