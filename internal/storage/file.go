package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/conn-castle/gradebook/internal/messages"
)

const lockFileName = ".lock"

// FileKV stores each key as a file in a directory. Writes go through a
// temp file and rename, under an exclusive advisory lock shared by every
// process using the same directory.
type FileKV struct {
	dir string
}

// NewFileKV creates dir if needed and returns a FileKV rooted there.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf(messages.StorageCreateDirFmt, dir, err)
	}
	return &FileKV{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (f *FileKV) Dir() string {
	return f.dir
}

// Get reads key. A missing file reports ok=false.
func (f *FileKV) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	path := filepath.Join(f.dir, key)
	var data []byte
	var found bool
	err := withFileLock(f.lockPath(), func() error {
		content, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf(messages.StorageReadFmt, path, err)
		}
		data, found = content, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, found, nil
}

// Set writes value to key atomically.
func (f *FileKV) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	path := filepath.Join(f.dir, key)
	return withFileLock(f.lockPath(), func() error {
		if err := writeFileAtomic(path, value, 0o644); err != nil {
			return fmt.Errorf(messages.StorageWriteFmt, path, err)
		}
		return nil
	})
}

// Delete removes key.
func (f *FileKV) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	path := filepath.Join(f.dir, key)
	return withFileLock(f.lockPath(), func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf(messages.StorageDeleteFmt, path, err)
		}
		return nil
	})
}

// Close is a no-op; FileKV holds no open handles between calls.
func (f *FileKV) Close() error {
	return nil
}

func (f *FileKV) lockPath() string {
	return filepath.Join(f.dir, lockFileName)
}

var renameFile = os.Rename

// writeFileAtomic writes data to a temp file next to path and renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return err
	}
	if err := renameFile(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
