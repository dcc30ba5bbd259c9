package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/conn-castle/gradebook/internal/messages"
	"github.com/conn-castle/gradebook/internal/roster"
)

const (
	nameWidth  = 18
	gradeWidth = 9
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	confirmStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)
	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	return s
}

func tableColumns(columns int) []table.Column {
	out := make([]table.Column, 0, columns+2)
	out = append(out,
		table.Column{Title: messages.TUIHeaderSurname, Width: nameWidth},
		table.Column{Title: messages.TUIHeaderName, Width: nameWidth},
	)
	for i := 1; i <= columns; i++ {
		out = append(out, table.Column{Title: fmt.Sprintf(messages.TUIColumnHeaderFmt, i), Width: gradeWidth})
	}
	return out
}

// tableRows renders students. The grade under the cursor is bracketed.
func tableRows(students []roster.Student, cursor int, column int) []table.Row {
	rows := make([]table.Row, len(students))
	for i, s := range students {
		row := make(table.Row, 0, len(s.Grades)+2)
		row = append(row, s.Surname, s.Name)
		for j, g := range s.Grades {
			cell := g.Label()
			if i == cursor && j == column {
				cell = "[" + cell + "]"
			}
			row = append(row, cell)
		}
		rows[i] = row
	}
	return rows
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(messages.TUITitle))
	b.WriteString("\n\n")

	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.view.Total == 0:
		b.WriteString(statusStyle.Render(messages.TUIEmptyRoster))
	case len(m.view.Students) == 0:
		b.WriteString(statusStyle.Render(messages.TUINoMatches))
	default:
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf(messages.TUIStatusFmt, len(m.view.Students), m.view.Total, m.view.Columns)))
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		form := lipgloss.JoinVertical(lipgloss.Left,
			messages.TUIAddTitle,
			m.surname.View(),
			m.name.View(),
		)
		b.WriteString(formStyle.Render(form))
		b.WriteString("\n")
	case modeConfirm:
		b.WriteString(confirmStyle.Render(fmt.Sprintf(messages.TUIConfirmHintFmt, m.prompt)))
		b.WriteString("\n")
	}

	if m.notice != "" {
		style := noticeStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
