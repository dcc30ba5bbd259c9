package messages

// Logging messages.
const (
	LoggingCreateDirFmt    = "create log dir %s: %w"
	LoggingInitFailedFmt   = "initialize logger: %w"
	LoggingInvalidLevelFmt = "invalid log level %q (use debug, info, warn, error)"
)
