package messages

// Config messages for configuration loading and validation.
const (
	// ConfigReadFailedFmt formats config read errors.
	ConfigReadFailedFmt       = "read config %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %v"
	ConfigEncodeFailedFmt     = "encode config: %w"
	ConfigWriteFailedFmt      = "write config %s: %w"
	ConfigResolveHomeFmt      = "resolve home dir: %w"
	ConfigExpandPathFmt       = "expand path %s: %w"

	ConfigStorageBackendInvalidFmt = "%s: storage.backend %q must be one of file, sqlite, memory"
	ConfigDefaultColumnsInvalidFmt = "%s: roster.default_columns must be zero or greater"
	ConfigDiffLinesInvalidFmt      = "%s: export.diff_lines must be zero or greater"
	ConfigLogLevelInvalidFmt       = "%s: log.level %q must be one of debug, info, warn, error"
)
