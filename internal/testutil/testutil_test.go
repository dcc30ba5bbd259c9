package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSequentialIDs(t *testing.T) {
	next := SequentialIDs("s")
	if got := next(); got != "s1" {
		t.Fatalf("expected s1, got %q", got)
	}
	if got := next(); got != "s2" {
		t.Fatalf("expected s2, got %q", got)
	}
}

func TestNewStoreSeedsStudents(t *testing.T) {
	store := NewStore(t, [2]string{"Smith", "John"}, [2]string{"Brown", ""})
	if store.Len() != 2 {
		t.Fatalf("expected 2 students, got %d", store.Len())
	}
	if _, ok := store.Get("s2"); !ok {
		t.Fatal("expected id s2")
	}
}

func TestWithWorkingDirRestoresCwd(t *testing.T) {
	before, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	dir := t.TempDir()
	WithWorkingDir(t, dir, func() {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("getwd: %v", err)
		}
		resolved, _ := filepath.EvalSymlinks(dir)
		got, _ := filepath.EvalSymlinks(cwd)
		if got != resolved {
			t.Fatalf("expected cwd %q, got %q", resolved, got)
		}
	})
	after, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if after != before {
		t.Fatalf("expected cwd restored to %q, got %q", before, after)
	}
}
