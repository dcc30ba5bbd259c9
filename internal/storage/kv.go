// Package storage provides the key-value backends the roster is persisted to.
package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conn-castle/gradebook/internal/messages"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// sqliteFileName is the database file used by the sqlite backend inside the data dir.
const sqliteFileName = "gradebook.db"

// KV is a minimal key-value store.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(key string) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Dir is the data directory. The file backend stores one file per key
	// there; the sqlite backend keeps its database file there.
	Dir string
}

// Open returns the backend named by opts.Backend. An empty backend means file.
func Open(opts Options) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return NewFileKV(opts.Dir)
	case BackendSQLite:
		return NewSQLiteKV(filepath.Join(opts.Dir, sqliteFileName))
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf(messages.StorageBackendUnknownFmt, opts.Backend)
	}
}

// validateKey rejects keys that could escape the data directory.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf(messages.StorageInvalidKeyFmt, key)
	}
	return nil
}
