package config

import (
	"fmt"
	"strings"

	"github.com/conn-castle/gradebook/internal/messages"
)

// Validate checks enum and range constraints. Unset fields are allowed and
// filled with defaults by Load.
func (c *Config) Validate(path string) error {
	if c.Storage.Backend != "" && !isValidOption("storage.backend", strings.ToLower(c.Storage.Backend)) {
		return fmt.Errorf(messages.ConfigStorageBackendInvalidFmt, path, c.Storage.Backend)
	}
	if c.Roster.DefaultColumns != nil && *c.Roster.DefaultColumns < 0 {
		return fmt.Errorf(messages.ConfigDefaultColumnsInvalidFmt, path)
	}
	if c.Export.DiffLines < 0 {
		return fmt.Errorf(messages.ConfigDiffLinesInvalidFmt, path)
	}
	if c.Log.Level != "" && !isValidOption("log.level", strings.ToLower(c.Log.Level)) {
		return fmt.Errorf(messages.ConfigLogLevelInvalidFmt, path, c.Log.Level)
	}
	return nil
}
