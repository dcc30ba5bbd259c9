package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/gradebook/internal/command"
	"github.com/conn-castle/gradebook/internal/export"
	"github.com/conn-castle/gradebook/internal/messages"
	"github.com/conn-castle/gradebook/internal/roster"
)

var (
	successColor = color.New(color.FgGreen)
	noticeColor  = color.New(color.FgYellow)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var search string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   messages.ListUse,
		Short: messages.ListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				d := command.NewDispatcher(a.store, nil)
				view, err := d.Execute(command.Search{Query: search})
				if err != nil {
					return err
				}
				// Listing is the command's output, so --quiet does not hide it.
				out := cmd.OutOrStdout()
				if asJSON {
					data, err := export.JSON(view.Students)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(out, string(data))
					return err
				}
				return printRoster(out, view)
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", messages.ListFlagSearch)
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.ListFlagJSON)
	return cmd
}

func printRoster(out io.Writer, view command.View) error {
	if view.Total == 0 {
		_, err := fmt.Fprintln(out, messages.ListEmpty)
		return err
	}
	if len(view.Students) == 0 {
		_, err := fmt.Fprintf(out, messages.ListNoMatchesFmt, view.Query)
		return err
	}

	headers := []string{messages.ListHeaderID, messages.ListHeaderSurname, messages.ListHeaderName}
	for i := 1; i <= view.Columns; i++ {
		headers = append(headers, fmt.Sprintf(messages.ListHeaderGradeFmt, i))
	}
	rows := make([][]string, 0, len(view.Students))
	for _, s := range view.Students {
		row := []string{s.ID, s.Surname, s.Name}
		for _, g := range s.Grades {
			row = append(row, g.Label())
		}
		rows = append(rows, row)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if _, err := fmt.Fprintln(out, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, messages.ListSummaryFmt, len(view.Students), view.Total, view.Columns)
	return err
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.AddUse,
		Short: messages.AddShort,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			surname, name := args[0], ""
			if len(args) > 1 {
				name = args[1]
			}
			return withApp(cmd, opts, func(a *app) error {
				before := a.store.Len()
				if _, err := command.NewDispatcher(a.store, nil).Execute(command.Add{Surname: surname, Name: name}); err != nil {
					return err
				}
				students := a.store.Students()
				if len(students) <= before {
					return nil
				}
				added := students[len(students)-1]
				_, _ = successColor.Fprintf(a.out, messages.AddedFmt, strings.TrimSpace(added.FullName()), added.ID)
				return nil
			})
		},
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   messages.RemoveUse,
		Short: messages.RemoveShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				student, err := resolveID(a.store, args[0])
				if err != nil {
					return err
				}
				confirm, err := confirmer(cmd.Name(), yes)
				if err != nil {
					return err
				}
				view, err := command.NewDispatcher(a.store, confirm).Execute(command.Remove{ID: student.ID})
				if err != nil {
					return err
				}
				if view.Declined {
					_, _ = fmt.Fprintln(a.out, messages.Cancelled)
					return nil
				}
				_, _ = successColor.Fprintf(a.out, messages.RemovedFmt, strings.TrimSpace(student.FullName()))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.FlagYes)
	return cmd
}

func newGradeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.GradeUse,
		Short: messages.GradeShort,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			grade, err := roster.ParseGrade(args[2])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				student, err := resolveID(a.store, args[0])
				if err != nil {
					return err
				}
				column, err := strconv.Atoi(strings.TrimSpace(args[1]))
				if err != nil || column < 1 || column > a.store.Columns() {
					return fmt.Errorf(messages.GradeColumnInvalidFmt, args[1], a.store.Columns())
				}
				_, err = command.NewDispatcher(a.store, nil).Execute(command.SetGrade{ID: student.ID, Index: column - 1, Value: grade})
				if err != nil {
					return err
				}
				_, _ = successColor.Fprintf(a.out, messages.GradeSetFmt, strings.TrimSpace(student.FullName()), column, grade.Label())
				return nil
			})
		},
	}
}

func newColumnsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.ColumnsUse,
		Short: messages.ColumnsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), messages.ColumnsCountFmt, a.store.Columns())
				return err
			})
		},
	}
	add := &cobra.Command{
		Use:   messages.ColumnsAddUse,
		Short: messages.ColumnsAddShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(cmd, opts, command.AddColumn{})
		},
	}
	remove := &cobra.Command{
		Use:   messages.ColumnsRemoveUse,
		Short: messages.ColumnsRemoveShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(cmd, opts, command.RemoveColumn{})
		},
	}
	cmd.AddCommand(add, remove)
	return cmd
}

func runColumns(cmd *cobra.Command, opts *rootOptions, c command.Command) error {
	return withApp(cmd, opts, func(a *app) error {
		before := a.store.Columns()
		view, err := command.NewDispatcher(a.store, nil).Execute(c)
		if err != nil {
			return err
		}
		if view.Columns == before {
			_, _ = noticeColor.Fprintln(a.out, messages.ColumnsNoneToRemove)
			return nil
		}
		_, _ = successColor.Fprintf(a.out, messages.ColumnsCountFmt, view.Columns)
		return nil
	})
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   messages.ClearUse,
		Short: messages.ClearShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm, err := confirmer(cmd.Name(), yes)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				view, err := command.NewDispatcher(a.store, confirm).Execute(command.ClearAll{})
				if err != nil {
					return err
				}
				if view.Declined {
					_, _ = fmt.Fprintln(a.out, messages.Cancelled)
					return nil
				}
				_, _ = successColor.Fprintln(a.out, messages.Cleared)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.FlagYes)
	return cmd
}
