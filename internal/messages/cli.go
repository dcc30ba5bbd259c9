package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse   = "gb"
	RootShort = "Gradebook: a roster of students and their grades"
	RootLong  = "gb keeps a class roster with a uniform set of grade columns, persists every change, and exports the table as JSON, CSV, XLSX, or HTML."

	RootVersionFlag = "Print version and exit"
	RootFlagConfig  = "Path to config.toml (default ~/.gradebook/config.toml)"
	RootFlagDataDir = "Data directory; overrides storage.dir"
	RootFlagQuiet   = "Suppress informational output"
	RootFlagDebug   = "Write debug-level entries to the log file"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	ListUse        = "list"
	ListShort      = "Show the roster"
	ListFlagSearch = "Only show students whose \"surname name\" contains this text (case-insensitive)"
	ListFlagJSON   = "Print the matching students as JSON"

	AddUse      = "add <surname> [name]"
	AddShort    = "Add a student"
	AddedFmt    = "Added %s (%s)\n"
	RemoveUse   = "remove <id>"
	RemoveShort = "Remove a student"
	RemovedFmt  = "Removed %s\n"
	FlagYes     = "Skip the confirmation prompt"

	GradeUse              = "grade <id> <column> <value>"
	GradeShort            = "Set a grade (column is 1-based; value is one of 2, 3, 4, 5, N/A, or - to clear)"
	GradeSetFmt           = "%s, grade %d: %s\n"
	GradeColumnInvalidFmt = "column %q must be between 1 and %d"

	ColumnsUse          = "columns"
	ColumnsShort        = "Show or change the number of grade columns"
	ColumnsAddUse       = "add"
	ColumnsAddShort     = "Append an empty grade column"
	ColumnsRemoveUse    = "remove"
	ColumnsRemoveShort  = "Drop the last grade column and its grades"
	ColumnsCountFmt     = "%d grade columns\n"
	ColumnsNoneToRemove = "No grade columns to remove."

	ClearUse   = "clear"
	ClearShort = "Delete every student"
	Cleared    = "Roster cleared."

	ExportUse        = "export <json|csv|xlsx|html>"
	ExportShort      = "Write the roster to gradebook_export.<format>"
	ExportFlagDir    = "Output directory; overrides export.dir"
	ExportFlagForce  = "Overwrite an existing export without asking"
	ExportNeedsForce = "export file exists and differs; re-run with --force to overwrite"

	EditUse   = "edit"
	EditShort = "Open the interactive roster editor"

	McpUse   = "mcp"
	McpShort = "Run the gradebook MCP tool server over stdio"

	SetupUse   = "setup"
	SetupShort = "Interactively write config.toml"

	Cancelled               = "Cancelled."
	ConfirmRequiresYesFmt   = "%s needs confirmation; re-run with --yes or from an interactive terminal"
	CommandRequiresTerminal = "this command requires an interactive terminal"
	StudentNotFoundFmt      = "no student with id %q"
	StudentAmbiguousFmt     = "id prefix %q matches %d students"
	ListEmpty               = "No students."
	ListNoMatchesFmt        = "No students match %q.\n"
	ListHeaderID            = "ID"
	ListHeaderSurname       = "Surname"
	ListHeaderName          = "Name"
	ListHeaderGradeFmt      = "Grade %d"
	ListSummaryFmt          = "%d of %d students, %d grade columns\n"
	OpenStoreFailedFmt      = "open roster: %w"
)
