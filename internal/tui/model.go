// Package tui is the interactive gradebook editor. Every key press becomes a
// command run through the dispatcher; the model only keeps the last view.
package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/conn-castle/gradebook/internal/command"
	"github.com/conn-castle/gradebook/internal/export"
	"github.com/conn-castle/gradebook/internal/messages"
	"github.com/conn-castle/gradebook/internal/roster"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeAdd
	modeConfirm
)

// Options configures the editor.
type Options struct {
	// ExportDir receives gradebook_export.csv when e is pressed.
	ExportDir string
	Logger    *zap.Logger
}

// gate answers dispatcher prompts. A first pass runs with approve=false to
// capture the prompt text; the model asks the user and replays on "y".
type gate struct {
	approve bool
	prompt  string
}

func (g *gate) Confirm(prompt string) (bool, error) {
	g.prompt = prompt
	return g.approve, nil
}

// Model is the bubbletea model for the editor.
type Model struct {
	dispatcher *command.Dispatcher
	gate       *gate
	logger     *zap.Logger
	exportDir  string

	view    command.View
	table   table.Model
	search  textinput.Model
	surname textinput.Model
	name    textinput.Model
	help    help.Model
	keys    keyMap

	mode     mode
	addField int
	column   int
	pending  command.Command
	prompt   string
	notice   string
	failed   bool
}

// New returns an editor over store.
func New(store *roster.Store, opts Options) Model {
	g := &gate{}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = messages.TUISearchPlaceholder
	search.CharLimit = 64

	surname := textinput.New()
	surname.Placeholder = messages.TUISurnamePlaceholder
	surname.CharLimit = 64
	name := textinput.New()
	name.Placeholder = messages.TUINamePlaceholder
	name.CharLimit = 64

	m := Model{
		dispatcher: command.NewDispatcher(store, g),
		gate:       g,
		logger:     logger,
		exportDir:  exportDir,
		table:      table.New(table.WithFocused(true), table.WithHeight(15)),
		search:     search,
		surname:    surname,
		name:       name,
		help:       help.New(),
		keys:       defaultKeyMap(),
	}
	m.table.SetStyles(tableStyles())
	m.view = m.dispatcher.View()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		height := msg.Height - 8
		if height < 3 {
			height = 3
		}
		m.table.SetHeight(height)
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	m.failed = false
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp(1)
		m.refresh()
	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown(1)
		m.refresh()
	case key.Matches(msg, m.keys.Left):
		if m.column > 0 {
			m.column--
			m.refresh()
		}
	case key.Matches(msg, m.keys.Right):
		if m.column < m.view.Columns-1 {
			m.column++
			m.refresh()
		}
	case key.Matches(msg, m.keys.GradeUp):
		m.cycleGrade(roster.Grade.Next)
	case key.Matches(msg, m.keys.GradeDown):
		m.cycleGrade(roster.Grade.Prev)
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.addField = 0
		m.surname.SetValue("")
		m.name.SetValue("")
		m.name.Blur()
		return m, m.surname.Focus()
	case key.Matches(msg, m.keys.Delete):
		if student, ok := m.selected(); ok {
			m.ask(command.Remove{ID: student.ID})
		}
	case key.Matches(msg, m.keys.AddColumn):
		m.execute(command.AddColumn{})
	case key.Matches(msg, m.keys.RemoveColumn):
		m.execute(command.RemoveColumn{})
	case key.Matches(msg, m.keys.Clear):
		m.ask(command.ClearAll{})
	case key.Matches(msg, m.keys.Export):
		m.exportCSV()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.execute(command.Search{})
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.execute(command.Search{Query: m.search.Value()})
	return m, cmd
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.surname.Blur()
		m.name.Blur()
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		return m, m.switchAddField()
	case tea.KeyEnter:
		if m.addField == 0 {
			return m, m.switchAddField()
		}
		if !m.execute(command.Add{Surname: m.surname.Value(), Name: m.name.Value()}) {
			return m, nil
		}
		m.mode = modeBrowse
		m.surname.Blur()
		m.name.Blur()
		m.table.GotoBottom()
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	if m.addField == 0 {
		m.surname, cmd = m.surname.Update(msg)
	} else {
		m.name, cmd = m.name.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchAddField() tea.Cmd {
	if m.addField == 0 {
		m.addField = 1
		m.surname.Blur()
		return m.name.Focus()
	}
	m.addField = 0
	m.name.Blur()
	return m.surname.Focus()
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.gate.approve = true
		m.execute(m.pending)
		m.gate.approve = false
	case "n", "N", "esc":
		m.notice = messages.TUICancelled
	case "ctrl+c":
		return m, tea.Quit
	default:
		return m, nil
	}
	m.mode = modeBrowse
	m.pending = nil
	m.prompt = ""
	return m, nil
}

// ask runs a command that may need confirmation. When the dispatcher asks,
// the prompt is shown and the command is replayed on "y".
func (m *Model) ask(cmd command.Command) {
	m.gate.approve = false
	m.gate.prompt = ""
	view, err := m.dispatcher.Execute(cmd)
	if err != nil {
		m.fail(err)
		return
	}
	if view.Declined {
		m.mode = modeConfirm
		m.pending = cmd
		m.prompt = m.gate.prompt
		return
	}
	m.view = view
	m.refresh()
}

// execute runs cmd and reports whether it succeeded.
func (m *Model) execute(cmd command.Command) bool {
	view, err := m.dispatcher.Execute(cmd)
	m.view = view
	m.refresh()
	if err != nil {
		m.fail(err)
		return false
	}
	m.logger.Debug("command executed", zap.String("command", fmt.Sprintf("%T", cmd)))
	return true
}

func (m *Model) fail(err error) {
	m.notice = err.Error()
	m.failed = true
	m.logger.Warn("command failed", zap.Error(err))
}

func (m *Model) cycleGrade(step func(roster.Grade) roster.Grade) {
	student, ok := m.selected()
	if !ok || m.column >= len(student.Grades) {
		return
	}
	m.execute(command.SetGrade{ID: student.ID, Index: m.column, Value: step(student.Grades[m.column])})
}

func (m *Model) exportCSV() {
	store := m.dispatcher.Store()
	data, err := export.Render(export.FormatCSV, store.Students(), store.Columns())
	if err != nil {
		m.fail(err)
		return
	}
	writer := export.Writer{Dir: m.exportDir, Force: true, Out: io.Discard}
	path, err := writer.Write(export.FormatCSV, data)
	if err != nil {
		m.fail(err)
		return
	}
	m.notice = fmt.Sprintf(messages.TUIExportedFmt, path)
}

func (m Model) selected() (roster.Student, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.view.Students) {
		return roster.Student{}, false
	}
	return m.view.Students[i], true
}

// refresh rebuilds the table from the last view and clamps the cursors.
func (m *Model) refresh() {
	if m.column >= m.view.Columns {
		m.column = m.view.Columns - 1
	}
	if m.column < 0 {
		m.column = 0
	}
	cursor := max(m.table.Cursor(), 0)
	if n := len(m.view.Students); cursor >= n {
		cursor = max(n-1, 0)
	}
	// Rows are cleared first so a narrower column set never indexes past a row.
	m.table.SetRows(nil)
	m.table.SetColumns(tableColumns(m.view.Columns))
	m.table.SetRows(tableRows(m.view.Students, cursor, m.column))
	m.table.SetCursor(cursor)
}

var errNilStore = errors.New(messages.CommandStoreRequired)

var runProgram = func(p *tea.Program) (tea.Model, error) { return p.Run() }

// Run starts the editor in the alternate screen and blocks until quit.
func Run(store *roster.Store, opts Options) error {
	if store == nil {
		return errNilStore
	}
	p := tea.NewProgram(New(store, opts), tea.WithAltScreen())
	_, err := runProgram(p)
	return err
}
