package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/conn-castle/gradebook/internal/mcp"
	"github.com/conn-castle/gradebook/internal/messages"
	"github.com/conn-castle/gradebook/internal/prompt"
	"github.com/conn-castle/gradebook/internal/tui"
)

var (
	runEditor    = tui.Run
	runMCPServer = mcp.RunServer
	runSetup     = prompt.RunSetup
)

func newEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.EditUse,
		Short: messages.EditShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractive() {
				return errors.New(messages.CommandRequiresTerminal)
			}
			return withApp(cmd, opts, func(a *app) error {
				return runEditor(a.store, tui.Options{ExportDir: a.cfg.Export.Dir, Logger: a.logger})
			})
		},
	}
}

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.McpUse,
		Short: messages.McpShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				return runMCPServer(cmd.Context(), Version, a.store, a.logger)
			})
		},
	}
}

func newSetupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.SetupUse,
		Short: messages.SetupShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := opts.resolvePaths()
			if err != nil {
				return err
			}
			return runSetup(paths, newUI(), cmd.OutOrStdout())
		},
	}
}
