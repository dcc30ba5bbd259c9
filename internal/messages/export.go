package messages

// Export messages.
const (
	ExportEmptyRoster       = "no data to export"
	ExportUnknownFormatFmt  = "unknown export format %q (supported: json, csv, xlsx, html)"
	ExportEncodeFailedFmt   = "encode %s export: %w"
	ExportCreateDirFmt      = "create export dir %s: %w"
	ExportReadExistingFmt   = "read existing export %s: %w"
	ExportWriteFailedFmt    = "write export %s: %w"
	ExportOverwriteDeclined = "export skipped; existing file kept"
	ExportDiffTruncatedFmt  = "... (truncated to %d lines; raise export.diff_lines in config.toml to see more)"
	ExportUnchangedFmt      = "%s is already up to date\n"
	ExportWrittenFmt        = "Wrote %s\n"
	ExportCSVHeaderSurname  = "Surname"
	ExportCSVHeaderName     = "Name"
	ExportCSVHeaderGradeFmt = "Grade %d"
	ExportSheetName         = "Gradebook"
	ExportHTMLTitle         = "Gradebook"
)
