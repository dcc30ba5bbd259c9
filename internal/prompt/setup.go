package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/conn-castle/gradebook/internal/config"
	"github.com/conn-castle/gradebook/internal/messages"
)

var loadConfigFunc = config.Load

// RunSetup walks the user through the config fields and writes
// paths.ConfigPath after showing a diff of the change.
func RunSetup(paths config.Paths, ui UI, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}
	err := runSetup(paths, ui, out)
	if errors.Is(err, ErrCancelled) {
		_, _ = fmt.Fprintln(out, messages.SetupCancelled)
		return nil
	}
	return err
}

func runSetup(paths config.Paths, ui UI, out io.Writer) error {
	cfg, err := loadConfigFunc(paths)
	if err != nil {
		if !errors.Is(err, config.ErrConfigValidation) {
			return err
		}
		// An invalid file is replaced rather than patched.
		cfg = config.Defaults(paths)
	}
	if err := ui.Note(messages.SetupIntro, introBody(paths.ConfigPath)); err != nil {
		return err
	}

	backend := strings.ToLower(cfg.Storage.Backend)
	if err := ui.Select(messages.SetupBackendTitle, config.OptionValues("storage.backend"), &backend); err != nil {
		return err
	}
	cfg.Storage.Backend = backend

	if backend != "memory" {
		dir := cfg.Storage.Dir
		if err := ui.Input(messages.SetupDirTitle, &dir); err != nil {
			return err
		}
		if strings.TrimSpace(dir) != "" {
			cfg.Storage.Dir = strings.TrimSpace(dir)
		}
	}

	columnsText := strconv.Itoa(cfg.Columns())
	if err := ui.Input(messages.SetupColumnsTitle, &columnsText); err != nil {
		return err
	}
	columns, err := parseColumns(columnsText)
	if err != nil {
		return err
	}
	cfg.Roster.DefaultColumns = &columns

	level := strings.ToLower(cfg.Log.Level)
	if err := ui.Select(messages.SetupLogLevelTitle, config.OptionValues("log.level"), &level); err != nil {
		return err
	}
	cfg.Log.Level = level

	next, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	current, err := os.ReadFile(paths.ConfigPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(messages.ConfigReadFailedFmt, paths.ConfigPath, err)
	}
	if bytes.Equal(current, next) {
		_, _ = fmt.Fprintln(out, messages.SetupNoChanges)
		return nil
	}

	diff := udiff.Unified(paths.ConfigPath, paths.ConfigPath, string(current), string(next))
	if err := ui.Note(messages.SetupReviewTitle, diff); err != nil {
		return err
	}
	apply := true
	if err := ui.Confirm(messages.SetupApplyTitle, &apply); err != nil {
		return err
	}
	if !apply {
		return ErrCancelled
	}
	if err := config.Save(paths.ConfigPath, cfg); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, color.GreenString(messages.SetupWrittenFmt, paths.ConfigPath))
	return nil
}

func parseColumns(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0, fmt.Errorf(messages.SetupColumnsInvalidFmt, text)
	}
	return n, nil
}

// introBody lists the storage backends so the choice that follows is informed.
func introBody(configPath string) string {
	lines := []string{fmt.Sprintf(messages.SetupIntroBodyFmt, configPath), ""}
	if field, ok := config.LookupField("storage.backend"); ok {
		for _, opt := range field.Options {
			lines = append(lines, fmt.Sprintf(messages.SetupBackendLineFmt, opt.Value, opt.Description))
		}
	}
	return strings.Join(lines, "\n")
}
