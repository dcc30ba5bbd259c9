package messages

// Prompt and setup wizard messages.
const (
	PromptRequiresTerminal = "this prompt requires an interactive terminal"

	SetupBackendFileDescription   = "JSON files in the data directory (default)"
	SetupBackendSQLiteDescription = "single SQLite database file"
	SetupBackendMemoryDescription = "in-memory only, nothing is saved"

	SetupIntro             = "Gradebook setup"
	SetupIntroBodyFmt      = "Answers are written to %s."
	SetupBackendLineFmt    = "  %-7s %s"
	SetupBackendTitle      = "Storage backend"
	SetupDirTitle          = "Data directory"
	SetupColumnsTitle      = "Grade columns for a new roster"
	SetupLogLevelTitle     = "Log level"
	SetupReviewTitle       = "Review changes"
	SetupApplyTitle        = "Write this config?"
	SetupColumnsInvalidFmt = "grade columns %q must be a whole number zero or greater"
	SetupNoChanges         = "Config is already up to date."
	SetupWrittenFmt        = "Wrote %s"
	SetupCancelled         = "Setup cancelled; no changes written."

	PromptOverwriteTitleFmt = "Overwrite %s?"
)
