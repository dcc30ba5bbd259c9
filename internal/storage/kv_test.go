package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()
	file, err := NewFileKV(filepath.Join(dir, "file"))
	require.NoError(t, err)
	db, err := NewSQLiteKV(filepath.Join(dir, "sqlite", "gradebook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return map[string]KV{
		BackendFile:   file,
		BackendSQLite: db,
		BackendMemory: NewMemoryKV(),
	}
}

func TestKVRoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set("roster", []byte(`[{"id":"1"}]`)))
			value, ok, err := kv.Get("roster")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":"1"}]`, string(value))

			require.NoError(t, kv.Set("roster", []byte(`[]`)))
			value, _, err = kv.Get("roster")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(value))

			require.NoError(t, kv.Delete("roster"))
			_, ok, err = kv.Get("roster")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Delete("roster"), "deleting a missing key is not an error")
		})
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	kv, err := Open(Options{Dir: dir})
	require.NoError(t, err)
	require.IsType(t, &FileKV{}, kv)
	assert.Equal(t, dir, kv.(*FileKV).Dir())

	kv, err = Open(Options{Backend: "SQLite", Dir: dir})
	require.NoError(t, err)
	require.IsType(t, &SQLiteKV{}, kv)
	assert.Equal(t, filepath.Join(dir, sqliteFileName), kv.(*SQLiteKV).Path())
	require.NoError(t, kv.Close())

	kv, err = Open(Options{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	_, err = Open(Options{Backend: "redis", Dir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestFileKVRejectsPathKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	for _, key := range []string{"", "..", "../escape", "a/b", `a\b`, ".lock"} {
		assert.Error(t, kv.Set(key, []byte("x")), key)
		_, _, err := kv.Get(key)
		assert.Error(t, err, key)
		assert.Error(t, kv.Delete(key), key)
	}
}

func TestFileKVAtomicWriteLeavesNoTempOnFailure(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set("roster", []byte("old")))

	orig := renameFile
	t.Cleanup(func() { renameFile = orig })
	renameFile = func(string, string) error { return errors.New("boom") }

	err = kv.Set("roster", []byte("new"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	value, ok, err := kv.Get("roster")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "old", string(value))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp-")
	}
}

func TestFileKVLockTimeout(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	origFlock, origSleep, origTimeout := flockFn, lockSleep, lockWaitTimeout
	t.Cleanup(func() {
		flockFn, lockSleep, lockWaitTimeout = origFlock, origSleep, origTimeout
	})
	flockFn = func(int, int) error { return unix.EWOULDBLOCK }
	lockSleep = func(time.Duration) {}
	lockWaitTimeout = 0

	err = kv.Set("roster", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestSQLiteKVClosed(t *testing.T) {
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "gb.db"))
	require.NoError(t, err)
	require.NoError(t, kv.Close())
	require.NoError(t, kv.Close())

	_, _, err = kv.Get("k")
	assert.Error(t, err)
	assert.Error(t, kv.Set("k", nil))
	assert.Error(t, kv.Delete("k"))
}

func TestSQLiteKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gb.db")
	kv, err := NewSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("roster", []byte("saved")))
	require.NoError(t, kv.Close())

	kv, err = NewSQLiteKV(path)
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()
	value, ok, err := kv.Get("roster")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "saved", string(value))
}

func TestMemoryKVCopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	value := []byte("abc")
	require.NoError(t, kv.Set("k", value))
	value[0] = 'x'
	got, _, err := kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	got[1] = 'y'
	again, _, _ := kv.Get("k")
	assert.Equal(t, "abc", string(again))
}
