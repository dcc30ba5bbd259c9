package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	GradeUp      key.Binding
	GradeDown    key.Binding
	Search       key.Binding
	Add          key.Binding
	Delete       key.Binding
	AddColumn    key.Binding
	RemoveColumn key.Binding
	Clear        key.Binding
	Export       key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev grade")),
		Right:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next grade")),
		GradeUp:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "raise")),
		GradeDown:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "lower")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Add:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		AddColumn:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "add column")),
		RemoveColumn: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "drop column")),
		Clear:        key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear all")),
		Export:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.GradeUp, k.GradeDown, k.Add, k.Delete, k.Export, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.GradeUp, k.GradeDown, k.Search},
		{k.Add, k.Delete, k.AddColumn, k.RemoveColumn},
		{k.Clear, k.Export, k.Quit},
	}
}
