// Package command is the typed intent interface between presentation code
// and the roster store. Presentation builds a Command, the Dispatcher runs it
// and hands back the View to render.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/conn-castle/gradebook/internal/messages"
	"github.com/conn-castle/gradebook/internal/roster"
)

// Command is one user intent.
type Command interface {
	isCommand()
}

// Add creates a student. Names are trimmed by the store.
type Add struct {
	Surname string
	Name    string
}

// Remove deletes a student after confirmation.
type Remove struct {
	ID string
}

// SetGrade writes one grade cell. Index is zero-based.
type SetGrade struct {
	ID    string
	Index int
	Value roster.Grade
}

// AddColumn widens every row by one empty cell.
type AddColumn struct{}

// RemoveColumn drops the last cell of every row. It is not confirmed.
type RemoveColumn struct{}

// ClearAll empties the roster after confirmation.
type ClearAll struct{}

// Search changes the active filter.
type Search struct {
	Query string
}

func (Add) isCommand()          {}
func (Remove) isCommand()       {}
func (SetGrade) isCommand()     {}
func (AddColumn) isCommand()    {}
func (RemoveColumn) isCommand() {}
func (ClearAll) isCommand()     {}
func (Search) isCommand()       {}

// View is the render state returned after each command.
type View struct {
	// Students is the roster filtered by Query.
	Students []roster.Student
	Columns  int
	Query    string
	// Total is the unfiltered roster size.
	Total int
	// Declined is set when a confirmation prompt was refused.
	Declined bool
}

// Confirmer asks the user to approve a destructive command.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function into a Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) (bool, error) { return true, nil })

// NeverConfirm declines every prompt.
var NeverConfirm Confirmer = ConfirmFunc(func(string) (bool, error) { return false, nil })

// Dispatcher executes commands against a store and tracks the active search.
type Dispatcher struct {
	store     *roster.Store
	confirmer Confirmer
	query     string
}

// NewDispatcher returns a Dispatcher for store. A nil confirmer declines everything.
func NewDispatcher(store *roster.Store, confirmer Confirmer) *Dispatcher {
	if confirmer == nil {
		confirmer = NeverConfirm
	}
	return &Dispatcher{store: store, confirmer: confirmer}
}

// Store returns the underlying roster store.
func (d *Dispatcher) Store() *roster.Store {
	return d.store
}

// View returns the current render state without running a command.
func (d *Dispatcher) View() View {
	return d.view(false)
}

// Execute runs cmd and returns the resulting view. On error the returned
// view still reflects the current (unchanged) state.
func (d *Dispatcher) Execute(cmd Command) (View, error) {
	if d.store == nil {
		return View{}, errors.New(messages.CommandStoreRequired)
	}
	switch c := cmd.(type) {
	case Add:
		_, err := d.store.Add(c.Surname, c.Name)
		return d.view(false), err
	case Remove:
		student, ok := d.store.Get(c.ID)
		if !ok {
			return d.view(false), nil
		}
		approved, err := d.confirmer.Confirm(removePrompt(student))
		if err != nil || !approved {
			return d.view(!approved && err == nil), err
		}
		_, err = d.store.Remove(c.ID)
		return d.view(false), err
	case SetGrade:
		_, err := d.store.SetGrade(c.ID, c.Index, c.Value)
		return d.view(false), err
	case AddColumn:
		return d.view(false), d.store.AddColumn()
	case RemoveColumn:
		return d.view(false), d.store.RemoveColumn()
	case ClearAll:
		approved, err := d.confirmer.Confirm(messages.CommandConfirmClear)
		if err != nil || !approved {
			return d.view(!approved && err == nil), err
		}
		return d.view(false), d.store.ClearAll()
	case Search:
		d.query = c.Query
		return d.view(false), nil
	default:
		return d.view(false), fmt.Errorf(messages.CommandUnknownFmt, cmd)
	}
}

func (d *Dispatcher) view(declined bool) View {
	return View{
		Students: d.store.Query(d.query),
		Columns:  d.store.Columns(),
		Query:    d.query,
		Total:    d.store.Len(),
		Declined: declined,
	}
}

func removePrompt(student roster.Student) string {
	name := strings.TrimSpace(student.FullName())
	if name == "" {
		return messages.CommandConfirmRemove
	}
	return fmt.Sprintf(messages.CommandConfirmRemoveFmt, name)
}
