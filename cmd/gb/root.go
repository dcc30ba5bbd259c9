package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conn-castle/gradebook/internal/command"
	"github.com/conn-castle/gradebook/internal/config"
	"github.com/conn-castle/gradebook/internal/logging"
	"github.com/conn-castle/gradebook/internal/messages"
	"github.com/conn-castle/gradebook/internal/prompt"
	"github.com/conn-castle/gradebook/internal/roster"
	"github.com/conn-castle/gradebook/internal/storage"
	"github.com/conn-castle/gradebook/internal/terminal"
)

var (
	userPaths     = config.UserPaths
	isInteractive = terminal.IsInteractive
	newUI         = func() prompt.UI { return prompt.NewHuhUI() }
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dataDir    string
	quiet      bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", messages.RootFlagConfig)
	flags.StringVar(&opts.dataDir, "data-dir", "", messages.RootFlagDataDir)
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, messages.RootFlagQuiet)
	flags.BoolVar(&opts.debug, "debug", false, messages.RootFlagDebug)

	cmd.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newRemoveCmd(opts),
		newGradeCmd(opts),
		newColumnsCmd(opts),
		newClearCmd(opts),
		newExportCmd(opts),
		newEditCmd(opts),
		newMCPCmd(opts),
		newSetupCmd(opts),
	)
	return cmd
}

// resolvePaths honors --config, falling back to ~/.gradebook.
func (o *rootOptions) resolvePaths() (config.Paths, error) {
	if strings.TrimSpace(o.configPath) == "" {
		return userPaths()
	}
	path, err := config.ExpandPath(o.configPath)
	if err != nil {
		return config.Paths{}, err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	paths := config.DefaultPaths(filepath.Dir(path))
	paths.ConfigPath = path
	return paths, nil
}

// app is an opened gradebook: config, logger, storage, and the roster store.
type app struct {
	paths  config.Paths
	cfg    *config.Config
	logger *zap.Logger
	kv     storage.KV
	store  *roster.Store
	out    io.Writer
}

// openApp loads config and opens the configured store. Callers must Close it.
func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	paths, err := opts.resolvePaths()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(paths)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.dataDir) != "" {
		dir, err := config.ExpandPath(opts.dataDir)
		if err != nil {
			return nil, err
		}
		cfg.Storage.Dir = dir
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File, Debug: opts.debug})
	if err != nil {
		return nil, err
	}
	kv, err := storage.Open(storage.Options{Backend: cfg.Storage.Backend, Dir: cfg.Storage.Dir})
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	store, err := roster.Open(kv,
		roster.WithLogger(logger),
		roster.WithDefaultColumns(cfg.Columns()),
	)
	if err != nil {
		_ = kv.Close()
		_ = logger.Sync()
		return nil, fmt.Errorf(messages.OpenStoreFailedFmt, err)
	}
	logger.Debug("roster opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("dir", cfg.Storage.Dir),
		zap.Int("students", store.Len()),
		zap.Int("columns", store.Columns()),
	)

	out := cmd.OutOrStdout()
	if opts.quiet {
		out = io.Discard
	}
	return &app{paths: paths, cfg: cfg, logger: logger, kv: kv, store: store, out: out}, nil
}

// Close releases storage and flushes the log.
func (a *app) Close() error {
	err := a.kv.Close()
	_ = a.logger.Sync()
	return err
}

// withApp opens the app, runs fn, and closes it, keeping the first error.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(a *app) error) (err error) {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(a)
}

// confirmer picks how destructive commands are confirmed: --yes approves,
// a terminal prompts, and anything else is refused.
func confirmer(action string, yes bool) (command.Confirmer, error) {
	if yes {
		return command.AlwaysConfirm, nil
	}
	if !isInteractive() {
		return nil, fmt.Errorf(messages.ConfirmRequiresYesFmt, action)
	}
	return prompt.Confirmer(newUI()), nil
}

// resolveID accepts a full id or a unique prefix of one.
func resolveID(store *roster.Store, arg string) (roster.Student, error) {
	arg = strings.TrimSpace(arg)
	if student, ok := store.Get(arg); ok {
		return student, nil
	}
	var matches []roster.Student
	if arg != "" {
		for _, s := range store.Students() {
			if strings.HasPrefix(s.ID, arg) {
				matches = append(matches, s)
			}
		}
	}
	switch len(matches) {
	case 0:
		return roster.Student{}, fmt.Errorf(messages.StudentNotFoundFmt, arg)
	case 1:
		return matches[0], nil
	default:
		return roster.Student{}, fmt.Errorf(messages.StudentAmbiguousFmt, arg, len(matches))
	}
}
