package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/gradebook/internal/roster"
	"github.com/conn-castle/gradebook/internal/testutil"
)

func newTestStore(t *testing.T) *roster.Store {
	t.Helper()
	return testutil.NewStore(t)
}

func connect(t *testing.T, store *roster.Store) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	server, err := NewServer("test", store, nil)
	require.NoError(t, err)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func call(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func decode[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, res.IsError, "tool returned error: %v", resultText(res))
	var out T
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &out))
	return out
}

func resultText(res *mcp.CallToolResult) string {
	for _, c := range res.Content {
		if text, ok := c.(*mcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}

func TestListTools(t *testing.T) {
	session := connect(t, newTestStore(t))
	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"list_students", "add_student", "remove_student", "set_grade",
		"add_column", "remove_column", "clear_all", "export_csv", "export_json",
	}, names)
}

func TestToolsEditRoster(t *testing.T) {
	store := newTestStore(t)
	session := connect(t, store)

	out := decode[RosterOutput](t, call(t, session, "add_student", map[string]any{"surname": " Smith ", "name": "John"}))
	assert.True(t, out.Changed)
	require.Len(t, out.Students, 1)
	assert.Equal(t, "Smith", out.Students[0].Surname)
	assert.Equal(t, 2, out.Columns)

	decode[RosterOutput](t, call(t, session, "add_student", map[string]any{"surname": "Brown", "name": "Ann"}))

	out = decode[RosterOutput](t, call(t, session, "set_grade", map[string]any{"id": "s1", "column": 2, "value": "n/a"}))
	assert.Equal(t, []roster.Grade{roster.GradeEmpty, roster.GradeNA}, out.Students[0].Grades)

	out = decode[RosterOutput](t, call(t, session, "set_grade", map[string]any{"id": "nobody", "column": 1, "value": "5"}))
	assert.False(t, out.Changed)

	out = decode[RosterOutput](t, call(t, session, "add_column", nil))
	assert.Equal(t, 3, out.Columns)
	out = decode[RosterOutput](t, call(t, session, "remove_column", nil))
	assert.Equal(t, 2, out.Columns)

	out = decode[RosterOutput](t, call(t, session, "list_students", map[string]any{"query": "SMI"}))
	require.Len(t, out.Students, 1)
	assert.Equal(t, 2, out.Total)

	// The filter does not stick to later calls.
	out = decode[RosterOutput](t, call(t, session, "remove_student", map[string]any{"id": "s2"}))
	assert.True(t, out.Changed)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Students, 1)
	assert.Equal(t, 1, store.Len())
}

func TestToolErrors(t *testing.T) {
	session := connect(t, newTestStore(t))

	res := call(t, session, "add_student", map[string]any{"surname": "  "})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "enter a surname or a name")

	res = call(t, session, "set_grade", map[string]any{"id": "s1", "column": 0, "value": "5"})
	assert.True(t, res.IsError)

	res = call(t, session, "set_grade", map[string]any{"id": "s1", "column": 1, "value": "7"})
	assert.True(t, res.IsError)

	res = call(t, session, "export_csv", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "no data to export")
}

func TestClearAllNeedsConfirm(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Add("Smith", "John")
	require.NoError(t, err)
	session := connect(t, store)

	res := call(t, session, "clear_all", map[string]any{"confirm": false})
	assert.True(t, res.IsError)
	assert.Equal(t, 1, store.Len())

	out := decode[RosterOutput](t, call(t, session, "clear_all", map[string]any{"confirm": true}))
	assert.True(t, out.Changed)
	assert.Empty(t, out.Students)
	assert.Equal(t, 0, store.Len())
}

func TestExportTools(t *testing.T) {
	store := newTestStore(t)
	student, err := store.Add("A", "B")
	require.NoError(t, err)
	_, err = store.SetGrade(student.ID, 0, roster.Grade4)
	require.NoError(t, err)
	session := connect(t, store)

	csv := decode[ExportOutput](t, call(t, session, "export_csv", nil))
	assert.Equal(t, "gradebook_export.csv", csv.FileName)
	assert.Equal(t, "Surname,Name,Grade 1,Grade 2\n\"A\",\"B\",\"4\",\"\"", csv.Content)

	js := decode[ExportOutput](t, call(t, session, "export_json", nil))
	assert.Equal(t, "gradebook_export.json", js.FileName)
	assert.Contains(t, js.Content, "\n  {\n")
}

func TestNewServerRequiresStore(t *testing.T) {
	_, err := NewServer("test", nil, nil)
	assert.Error(t, err)
}

func TestRunServerUsesRunner(t *testing.T) {
	store := newTestStore(t)
	var got *mcp.Server
	err := runServer(context.Background(), "v1", store, nil, func(_ context.Context, s *mcp.Server) error {
		got = s
		return nil
	})
	require.NoError(t, err)
	assert.NotNil(t, got)

	err = runServer(context.Background(), "v1", store, nil, func(context.Context, *mcp.Server) error {
		return errors.New("pipe closed")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run MCP tool server")

	err = runServer(context.Background(), "v1", store, nil, nil)
	assert.Error(t, err)
}
