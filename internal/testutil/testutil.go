// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/conn-castle/gradebook/internal/roster"
	"github.com/conn-castle/gradebook/internal/storage"
)

// SequentialIDs returns an id generator yielding prefix1, prefix2, ...
func SequentialIDs(prefix string) roster.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

// NewStore opens a roster over an in-memory KV with ids s1, s2, ... and adds
// one student per [surname, name] pair.
// t is the active test; students are added in order.
func NewStore(t *testing.T, students ...[2]string) *roster.Store {
	t.Helper()
	store, err := roster.Open(storage.NewMemoryKV(), roster.WithIDFunc(SequentialIDs("s")))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	for _, s := range students {
		if _, err := store.Add(s[0], s[1]); err != nil {
			t.Fatalf("add %v: %v", s, err)
		}
	}
	return store
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
// t is the active test; dir is the temporary working directory for fn.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}
