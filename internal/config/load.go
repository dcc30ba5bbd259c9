// Package config loads and validates the gradebook TOML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/gradebook/internal/messages"
)

// ErrConfigValidation wraps validation failures, as opposed to syntax or
// filesystem errors. Callers can match it with errors.Is.
var ErrConfigValidation = errors.New("config validation failed")

// Config is the full gradebook configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Roster  RosterConfig  `toml:"roster"`
	Export  ExportConfig  `toml:"export"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `toml:"backend"`
	// Dir is the data directory; relative paths resolve against the config file.
	Dir string `toml:"dir,omitempty"`
}

// RosterConfig holds roster defaults.
type RosterConfig struct {
	// DefaultColumns is the width of a brand-new roster.
	DefaultColumns *int `toml:"default_columns,omitempty"`
}

// ExportConfig controls export artifacts.
type ExportConfig struct {
	Dir       string `toml:"dir,omitempty"`
	DiffLines int    `toml:"diff_lines,omitempty"`
}

// LogConfig controls the operation log.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// Default values.
const (
	DefaultBackend        = "file"
	DefaultColumns        = 2
	DefaultExportDir      = "."
	DefaultDiffLines      = 40
	DefaultLogLevel       = "info"
	defaultConfigFileMode = 0o644
)

// Defaults returns a config with every field set for paths.
func Defaults(paths Paths) *Config {
	columns := DefaultColumns
	return &Config{
		Storage: StorageConfig{Backend: DefaultBackend, Dir: paths.DataDir},
		Roster:  RosterConfig{DefaultColumns: &columns},
		Export:  ExportConfig{Dir: DefaultExportDir, DiffLines: DefaultDiffLines},
		Log:     LogConfig{Level: DefaultLogLevel, File: paths.LogPath},
	}
}

// Load reads the config at paths.ConfigPath. A missing file yields Defaults.
func Load(paths Paths) (*Config, error) {
	data, err := os.ReadFile(paths.ConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(paths), nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFailedFmt, paths.ConfigPath, err)
	}
	cfg, err := ParseConfig(data, paths.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults(paths)
	return cfg, nil
}

// ParseConfig strictly decodes and validates TOML data. source is used in error messages.
func ParseConfig(data []byte, source string) (*Config, error) {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err)
		}
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return &cfg, nil
}

// Encode renders cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigEncodeFailedFmt, err)
	}
	return data, nil
}

// Save writes cfg as TOML to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.ConfigWriteFailedFmt, path, err)
	}
	if err := os.WriteFile(path, data, defaultConfigFileMode); err != nil {
		return fmt.Errorf(messages.ConfigWriteFailedFmt, path, err)
	}
	return nil
}

// applyDefaults fills unset fields and resolves relative paths against the config dir.
// Export.Dir is left alone so "." keeps meaning the working directory.
func (c *Config) applyDefaults(paths Paths) {
	defaults := Defaults(paths)
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = defaults.Storage.Dir
	}
	if c.Roster.DefaultColumns == nil {
		c.Roster.DefaultColumns = defaults.Roster.DefaultColumns
	}
	if c.Export.Dir == "" {
		c.Export.Dir = defaults.Export.Dir
	}
	if c.Export.DiffLines == 0 {
		c.Export.DiffLines = defaults.Export.DiffLines
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}
	c.Storage.Dir = resolvePath(paths.Root, c.Storage.Dir)
	c.Log.File = resolvePath(paths.Root, c.Log.File)
}

// resolvePath expands ~ and makes path absolute relative to base.
func resolvePath(base string, path string) string {
	if expanded, err := ExpandPath(path); err == nil {
		path = expanded
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Columns returns the configured default column count.
func (c *Config) Columns() int {
	if c.Roster.DefaultColumns == nil {
		return DefaultColumns
	}
	return *c.Roster.DefaultColumns
}
