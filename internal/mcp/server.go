// Package mcp exposes the roster as MCP tools over stdio so agents can read
// and edit the gradebook.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/conn-castle/gradebook/internal/command"
	"github.com/conn-castle/gradebook/internal/export"
	"github.com/conn-castle/gradebook/internal/messages"
	"github.com/conn-castle/gradebook/internal/roster"
)

type serverRunner func(ctx context.Context, server *mcp.Server) error

// RunServer starts the gradebook tool server over stdio and blocks until ctx
// is done or the client disconnects.
func RunServer(ctx context.Context, version string, store *roster.Store, logger *zap.Logger) error {
	return runServer(ctx, version, store, logger, defaultServerRunner)
}

func runServer(ctx context.Context, version string, store *roster.Store, logger *zap.Logger, runner serverRunner) error {
	if runner == nil {
		return fmt.Errorf(messages.McpRunServerFailedFmt, errors.New(messages.McpRunnerNil))
	}
	server, err := NewServer(version, store, logger)
	if err != nil {
		return err
	}
	if err := runner(ctx, server); err != nil {
		return fmt.Errorf(messages.McpRunServerFailedFmt, err)
	}
	return nil
}

// defaultServerRunner runs the MCP server over stdio.
func defaultServerRunner(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// NewServer builds an MCP server with every roster tool registered.
func NewServer(version string, store *roster.Store, logger *zap.Logger) (*mcp.Server, error) {
	if store == nil {
		return nil, errors.New(messages.McpStoreRequired)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	// The caller asked for the destructive tool by name, so prompts are
	// approved here; clear_all has its own confirm argument.
	h := &handlers{
		dispatcher: command.NewDispatcher(store, command.AlwaysConfirm),
		logger:     logger,
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gradebook",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{Name: "list_students", Description: messages.McpListStudentsDescription}, h.listStudents)
	mcp.AddTool(server, &mcp.Tool{Name: "add_student", Description: messages.McpAddStudentDescription}, h.addStudent)
	mcp.AddTool(server, &mcp.Tool{Name: "remove_student", Description: messages.McpRemoveStudentDescription}, h.removeStudent)
	mcp.AddTool(server, &mcp.Tool{Name: "set_grade", Description: messages.McpSetGradeDescription}, h.setGrade)
	mcp.AddTool(server, &mcp.Tool{Name: "add_column", Description: messages.McpAddColumnDescription}, h.addColumn)
	mcp.AddTool(server, &mcp.Tool{Name: "remove_column", Description: messages.McpRemoveColumnDescription}, h.removeColumn)
	mcp.AddTool(server, &mcp.Tool{Name: "clear_all", Description: messages.McpClearAllDescription}, h.clearAll)
	mcp.AddTool(server, &mcp.Tool{Name: "export_csv", Description: messages.McpExportCSVDescription}, h.exportCSV)
	mcp.AddTool(server, &mcp.Tool{Name: "export_json", Description: messages.McpExportJSONDescription}, h.exportJSON)

	return server, nil
}

// ListInput filters list_students.
type ListInput struct {
	Query string `json:"query,omitempty" jsonschema:"case-insensitive substring of surname and name"`
}

// AddInput is the add_student payload.
type AddInput struct {
	Surname string `json:"surname" jsonschema:"family name"`
	Name    string `json:"name,omitempty" jsonschema:"given name"`
}

// RemoveInput is the remove_student payload.
type RemoveInput struct {
	ID string `json:"id" jsonschema:"student id"`
}

// GradeInput is the set_grade payload.
type GradeInput struct {
	ID     string `json:"id" jsonschema:"student id"`
	Column int    `json:"column" jsonschema:"1-based grade column"`
	Value  string `json:"value" jsonschema:"one of empty, 2, 3, 4, 5, N/A"`
}

// ClearInput is the clear_all payload.
type ClearInput struct {
	Confirm bool `json:"confirm" jsonschema:"must be true to delete every student"`
}

// NoInput is used by tools without arguments.
type NoInput struct{}

// RosterOutput is the roster state returned by every mutating tool.
type RosterOutput struct {
	Students []roster.Student `json:"students"`
	Columns  int              `json:"columns"`
	Total    int              `json:"total"`
	Changed  bool             `json:"changed"`
}

// ExportOutput carries rendered export content.
type ExportOutput struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

// handlers serializes tool calls; the store is not safe for concurrent use
// and the SDK may dispatch requests in parallel.
type handlers struct {
	mu         sync.Mutex
	dispatcher *command.Dispatcher
	logger     *zap.Logger
}

func (h *handlers) listStudents(_ context.Context, _ *mcp.CallToolRequest, in ListInput) (*mcp.CallToolResult, RosterOutput, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	view, err := h.dispatcher.Execute(command.Search{Query: in.Query})
	// The search is per call; later tools see the whole roster.
	if _, resetErr := h.dispatcher.Execute(command.Search{}); err == nil {
		err = resetErr
	}
	if err != nil {
		return nil, RosterOutput{}, err
	}
	return nil, rosterOutput(view, false), nil
}

func (h *handlers) addStudent(_ context.Context, _ *mcp.CallToolRequest, in AddInput) (*mcp.CallToolResult, RosterOutput, error) {
	return h.run("add_student", command.Add{Surname: in.Surname, Name: in.Name})
}

func (h *handlers) removeStudent(_ context.Context, _ *mcp.CallToolRequest, in RemoveInput) (*mcp.CallToolResult, RosterOutput, error) {
	return h.run("remove_student", command.Remove{ID: in.ID})
}

func (h *handlers) setGrade(_ context.Context, _ *mcp.CallToolRequest, in GradeInput) (*mcp.CallToolResult, RosterOutput, error) {
	if in.Column < 1 {
		return nil, RosterOutput{}, errors.New(messages.McpColumnOutOfRange)
	}
	grade, err := roster.ParseGrade(in.Value)
	if err != nil {
		return nil, RosterOutput{}, err
	}
	return h.run("set_grade", command.SetGrade{ID: in.ID, Index: in.Column - 1, Value: grade})
}

func (h *handlers) addColumn(_ context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, RosterOutput, error) {
	return h.run("add_column", command.AddColumn{})
}

func (h *handlers) removeColumn(_ context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, RosterOutput, error) {
	return h.run("remove_column", command.RemoveColumn{})
}

func (h *handlers) clearAll(_ context.Context, _ *mcp.CallToolRequest, in ClearInput) (*mcp.CallToolResult, RosterOutput, error) {
	if !in.Confirm {
		return nil, RosterOutput{}, errors.New(messages.McpClearNotConfirmed)
	}
	return h.run("clear_all", command.ClearAll{})
}

func (h *handlers) exportCSV(_ context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, ExportOutput, error) {
	return h.export(export.FormatCSV)
}

func (h *handlers) exportJSON(_ context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, ExportOutput, error) {
	return h.export(export.FormatJSON)
}

// run executes cmd under the lock and reports whether the roster changed.
func (h *handlers) run(tool string, cmd command.Command) (*mcp.CallToolResult, RosterOutput, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	before := h.dispatcher.View()
	view, err := h.dispatcher.Execute(cmd)
	if err != nil {
		h.logger.Warn("tool failed", zap.String("tool", tool), zap.Error(err))
		return nil, RosterOutput{}, err
	}
	changed := !sameRoster(before, view)
	h.logger.Info("tool called", zap.String("tool", tool), zap.Bool("changed", changed))
	return nil, rosterOutput(view, changed), nil
}

func (h *handlers) export(format export.Format) (*mcp.CallToolResult, ExportOutput, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	view := h.dispatcher.View()
	data, err := export.Render(format, view.Students, view.Columns)
	if err != nil {
		return nil, ExportOutput{}, err
	}
	return nil, ExportOutput{FileName: format.FileName(), Content: string(data)}, nil
}

func rosterOutput(view command.View, changed bool) RosterOutput {
	students := view.Students
	if students == nil {
		students = []roster.Student{}
	}
	return RosterOutput{
		Students: students,
		Columns:  view.Columns,
		Total:    view.Total,
		Changed:  changed,
	}
}

func sameRoster(a command.View, b command.View) bool {
	if a.Columns != b.Columns || len(a.Students) != len(b.Students) {
		return false
	}
	for i := range a.Students {
		x, y := a.Students[i], b.Students[i]
		if x.ID != y.ID || x.Surname != y.Surname || x.Name != y.Name || len(x.Grades) != len(y.Grades) {
			return false
		}
		for j := range x.Grades {
			if x.Grades[j] != y.Grades[j] {
				return false
			}
		}
	}
	return true
}
