package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conn-castle/gradebook/internal/config"
	"github.com/conn-castle/gradebook/internal/prompt"
	"github.com/conn-castle/gradebook/internal/roster"
	"github.com/conn-castle/gradebook/internal/testutil"
	"github.com/conn-castle/gradebook/internal/tui"
)

type fakeUI struct {
	confirm bool
	titles  []string
}

func (f *fakeUI) Select(title string, _ []string, _ *string) error {
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeUI) Confirm(title string, value *bool) error {
	f.titles = append(f.titles, title)
	*value = f.confirm
	return nil
}

func (f *fakeUI) Input(title string, _ *string) error {
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeUI) Note(title string, _ string) error {
	f.titles = append(f.titles, title)
	return nil
}

// stubTerminal makes the CLI see (or not see) a terminal and answers prompts with ui.
func stubTerminal(t *testing.T, interactive bool, ui prompt.UI) {
	t.Helper()
	origInteractive, origUI := isInteractive, newUI
	t.Cleanup(func() {
		isInteractive = origInteractive
		newUI = origUI
	})
	isInteractive = func() bool { return interactive }
	if ui != nil {
		newUI = func() prompt.UI { return ui }
	}
}

// gb runs the CLI against a config rooted in root.
func gb(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	full := append([]string{"gb", "--config", filepath.Join(root, "config.toml")}, args...)
	err := execute(full, &out, &out)
	return out.String(), err
}

func mustGB(t *testing.T, root string, args ...string) string {
	t.Helper()
	out, err := gb(t, root, args...)
	require.NoError(t, err, out)
	return out
}

func listJSON(t *testing.T, root string) []roster.Student {
	t.Helper()
	var students []roster.Student
	require.NoError(t, json.Unmarshal([]byte(mustGB(t, root, "list", "--json")), &students))
	return students
}

func TestMainVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, execute([]string{"gb", "--version"}, &out, &out))
	assert.Contains(t, out.String(), Version)
}

func TestVersionString(t *testing.T) {
	origCommit, origDate := Commit, BuildDate
	t.Cleanup(func() { Commit, BuildDate = origCommit, origDate })

	Commit, BuildDate = "unknown", "unknown"
	assert.Equal(t, Version, versionString())

	Commit, BuildDate = "abc123", "2026-01-02"
	assert.Equal(t, Version+" (commit abc123, built 2026-01-02)", versionString())
}

func TestRunMain(t *testing.T) {
	var out bytes.Buffer
	code := -1
	runMain([]string{"gb", "unknown"}, &out, &out, func(c int) { code = c })
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "unknown command")

	orig := executeFunc
	t.Cleanup(func() { executeFunc = orig })
	executeFunc = func([]string, io.Writer, io.Writer) error { return nil }
	code = -1
	runMain([]string{"gb"}, &out, &out, func(c int) { code = c })
	assert.Equal(t, -1, code)
}

func TestAddAndList(t *testing.T) {
	root := t.TempDir()
	out := mustGB(t, root, "add", " Smith ", "John")
	assert.Contains(t, out, "Added Smith John")
	mustGB(t, root, "add", "Brown")

	out = mustGB(t, root, "list")
	assert.Contains(t, out, "Smith")
	assert.Contains(t, out, "Brown")
	assert.Contains(t, out, "Grade 2")
	assert.Contains(t, out, "2 of 2 students, 2 grade columns")

	out = mustGB(t, root, "list", "--search", "SM")
	assert.Contains(t, out, "Smith")
	assert.NotContains(t, out, "Brown")

	out = mustGB(t, root, "list", "-s", "zzz")
	assert.Contains(t, out, `No students match "zzz"`)

	students := listJSON(t, root)
	require.Len(t, students, 2)
	assert.Equal(t, "Smith", students[0].Surname)
	assert.Len(t, students[0].ID, 36)

	// The default file backend keeps the roster under the data dir.
	_, err := os.Stat(filepath.Join(root, "data", roster.StorageKey))
	assert.NoError(t, err)
}

func TestAddRejectsBlankNames(t *testing.T) {
	root := t.TempDir()
	_, err := gb(t, root, "add", "  ", " ")
	require.Error(t, err)
	assert.ErrorIs(t, err, roster.ErrNameRequired)
	assert.Contains(t, mustGB(t, root, "list"), "No students.")
}

func TestQuietSuppressesInfo(t *testing.T) {
	root := t.TempDir()
	assert.Empty(t, mustGB(t, root, "-q", "add", "Smith"))
	assert.Contains(t, mustGB(t, root, "-q", "list"), "Smith")
}

func TestGrade(t *testing.T) {
	root := t.TempDir()
	mustGB(t, root, "add", "Smith", "John")
	id := listJSON(t, root)[0].ID

	out := mustGB(t, root, "grade", id[:8], "2", "n/a")
	assert.Contains(t, out, "Smith John, grade 2: N/A")
	assert.Equal(t, []roster.Grade{roster.GradeEmpty, roster.GradeNA}, listJSON(t, root)[0].Grades)

	mustGB(t, root, "grade", id, "2", "-")
	assert.Equal(t, []roster.Grade{roster.GradeEmpty, roster.GradeEmpty}, listJSON(t, root)[0].Grades)

	_, err := gb(t, root, "grade", id, "3", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 2")

	_, err = gb(t, root, "grade", id, "1", "7")
	assert.ErrorIs(t, err, roster.ErrInvalidGrade)

	_, err = gb(t, root, "grade", "nobody", "1", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no student with id "nobody"`)
}

func TestColumns(t *testing.T) {
	root := t.TempDir()
	mustGB(t, root, "add", "Smith")
	assert.Contains(t, mustGB(t, root, "columns"), "2 grade columns")
	assert.Contains(t, mustGB(t, root, "columns", "add"), "3 grade columns")
	assert.Len(t, listJSON(t, root)[0].Grades, 3)

	for i := 0; i < 3; i++ {
		mustGB(t, root, "columns", "remove")
	}
	assert.Contains(t, mustGB(t, root, "columns", "remove"), "No grade columns to remove.")
	assert.Empty(t, listJSON(t, root)[0].Grades)
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	mustGB(t, root, "add", "Smith", "John")
	mustGB(t, root, "add", "Brown", "Ann")
	students := listJSON(t, root)

	stubTerminal(t, false, nil)
	_, err := gb(t, root, "remove", students[0].ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	ui := &fakeUI{confirm: false}
	stubTerminal(t, true, ui)
	assert.Contains(t, mustGB(t, root, "remove", students[0].ID), "Cancelled.")
	assert.Equal(t, []string{"Delete Smith John permanently?"}, ui.titles)
	assert.Len(t, listJSON(t, root), 2)

	out := mustGB(t, root, "remove", "--yes", students[0].ID)
	assert.Contains(t, out, "Removed Smith John")
	remaining := listJSON(t, root)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Brown", remaining[0].Surname)
}

func TestClear(t *testing.T) {
	root := t.TempDir()
	mustGB(t, root, "add", "Smith")
	mustGB(t, root, "columns", "add")

	stubTerminal(t, false, nil)
	_, err := gb(t, root, "clear")
	require.Error(t, err)

	assert.Contains(t, mustGB(t, root, "clear", "-y"), "Roster cleared.")
	assert.Empty(t, listJSON(t, root))
	// The width survives a clear.
	assert.Contains(t, mustGB(t, root, "columns"), "3 grade columns")
}

func TestExport(t *testing.T) {
	root := t.TempDir()
	exportDir := filepath.Join(root, "exports")
	stubTerminal(t, false, nil)

	_, err := gb(t, root, "export", "csv", "--dir", exportDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data to export")

	mustGB(t, root, "add", "A", "B")
	id := listJSON(t, root)[0].ID
	mustGB(t, root, "grade", id, "1", "4")

	out := mustGB(t, root, "export", "CSV", "--dir", exportDir)
	path := filepath.Join(exportDir, "gradebook_export.csv")
	assert.Contains(t, out, "Wrote "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Surname,Name,Grade 1,Grade 2\n\"A\",\"B\",\"4\",\"\"", string(data))

	assert.Contains(t, mustGB(t, root, "export", "csv", "--dir", exportDir), "already up to date")

	mustGB(t, root, "grade", id, "2", "5")
	_, err = gb(t, root, "export", "csv", "--dir", exportDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	mustGB(t, root, "export", "csv", "--dir", exportDir, "--force")
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), `"A","B","4","5"`))

	for _, format := range []string{"json", "xlsx", "html"} {
		mustGB(t, root, "export", format, "--dir", exportDir)
		_, err := os.Stat(filepath.Join(exportDir, "gradebook_export."+format))
		assert.NoError(t, err, format)
	}

	_, err = gb(t, root, "export", "pdf")
	assert.Error(t, err)
}

func TestExportDefaultsToWorkingDir(t *testing.T) {
	root := t.TempDir()
	work := t.TempDir()
	mustGB(t, root, "add", "A", "B")
	testutil.WithWorkingDir(t, work, func() {
		mustGB(t, root, "export", "html")
	})
	data, err := os.ReadFile(filepath.Join(work, "gradebook_export.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<table")
}

func TestExportOverwritePrompt(t *testing.T) {
	root := t.TempDir()
	exportDir := t.TempDir()
	mustGB(t, root, "add", "A", "B")
	mustGB(t, root, "export", "json", "--dir", exportDir)
	mustGB(t, root, "add", "C", "D")

	ui := &fakeUI{confirm: false}
	stubTerminal(t, true, ui)
	assert.Contains(t, mustGB(t, root, "export", "json", "--dir", exportDir), "Cancelled.")
	assert.Contains(t, ui.titles, "Overwrite "+filepath.Join(exportDir, "gradebook_export.json")+"?")

	ui.confirm = true
	mustGB(t, root, "export", "json", "--dir", exportDir)
	data, err := os.ReadFile(filepath.Join(exportDir, "gradebook_export.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"surname": "C"`)
}

func TestSQLiteBackendAndDataDirFlag(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.toml"), []byte("[storage]\nbackend = \"sqlite\"\n"), 0o644))
	dataDir := filepath.Join(t.TempDir(), "db")

	mustGB(t, root, "--data-dir", dataDir, "add", "Smith")
	_, err := os.Stat(filepath.Join(dataDir, "gradebook.db"))
	require.NoError(t, err)
	assert.Contains(t, mustGB(t, root, "--data-dir", dataDir, "list"), "Smith")

	// Without the override the default data dir is empty.
	assert.Contains(t, mustGB(t, root, "list"), "No students.")
}

func TestInvalidConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.toml"), []byte("[storage]\nbackend = \"redis\"\n"), 0o644))
	_, err := gb(t, root, "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigValidation)
}

func TestDebugWritesLog(t *testing.T) {
	root := t.TempDir()
	mustGB(t, root, "--debug", "add", "Smith")
	data, err := os.ReadFile(filepath.Join(root, "gradebook.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "roster opened")
}

func TestEdit(t *testing.T) {
	root := t.TempDir()
	stubTerminal(t, false, nil)
	_, err := gb(t, root, "edit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")

	orig := runEditor
	t.Cleanup(func() { runEditor = orig })
	var got tui.Options
	runEditor = func(store *roster.Store, opts tui.Options) error {
		require.NotNil(t, store)
		got = opts
		return nil
	}
	stubTerminal(t, true, nil)
	mustGB(t, root, "edit")
	assert.Equal(t, ".", got.ExportDir)
	assert.NotNil(t, got.Logger)
}

func TestMCP(t *testing.T) {
	root := t.TempDir()
	orig := runMCPServer
	t.Cleanup(func() { runMCPServer = orig })

	called := false
	runMCPServer = func(ctx context.Context, version string, store *roster.Store, logger *zap.Logger) error {
		called = true
		assert.NotNil(t, ctx)
		assert.Equal(t, Version, version)
		assert.NotNil(t, store)
		return errors.New("stdin closed")
	}
	_, err := gb(t, root, "mcp")
	assert.True(t, called)
	assert.EqualError(t, err, "stdin closed")
}

func TestSetup(t *testing.T) {
	root := t.TempDir()
	ui := &fakeUI{confirm: true}
	stubTerminal(t, true, ui)

	out := mustGB(t, root, "setup")
	assert.Contains(t, out, "Wrote "+filepath.Join(root, "config.toml"))
	_, err := os.Stat(filepath.Join(root, "config.toml"))
	assert.NoError(t, err)
}

func TestUserPathsFallback(t *testing.T) {
	home := t.TempDir()
	orig := userPaths
	t.Cleanup(func() { userPaths = orig })
	userPaths = func() (config.Paths, error) { return config.DefaultPaths(filepath.Join(home, ".gradebook")), nil }

	var out bytes.Buffer
	require.NoError(t, execute([]string{"gb", "add", "Smith"}, &out, &out))
	_, err := os.Stat(filepath.Join(home, ".gradebook", "data", roster.StorageKey))
	assert.NoError(t, err)

	userPaths = func() (config.Paths, error) { return config.Paths{}, errors.New("no home") }
	err = execute([]string{"gb", "list"}, &out, &out)
	assert.EqualError(t, err, "no home")
}
