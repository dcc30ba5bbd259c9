// Package logging builds the zap logger used for the operation log.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/conn-castle/gradebook/internal/messages"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File receives JSON log lines. Empty disables logging.
	File string
	// Debug forces the debug level.
	Debug bool
}

// New returns a production-style JSON logger writing to opts.File.
// The terminal is left to the CLI and editor, so logs never go to stdout.
func New(opts Options) (*zap.Logger, error) {
	if strings.TrimSpace(opts.File) == "" {
		return zap.NewNop(), nil
	}
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		level = zapcore.DebugLevel
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf(messages.LoggingCreateDirFmt, filepath.Dir(opts.File), err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{opts.File}
	cfg.ErrorOutputPaths = []string{opts.File}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf(messages.LoggingInitFailedFmt, err)
	}
	return logger, nil
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf(messages.LoggingInvalidLevelFmt, name)
	}
	return level, nil
}
