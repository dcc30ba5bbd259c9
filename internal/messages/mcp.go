package messages

// MCP tool server messages.
const (
	McpRunServerFailedFmt = "failed to run MCP tool server: %w"
	McpRunnerNil          = "tool server runner is nil"
	McpStoreRequired      = "tool server needs a roster store"
	McpClearNotConfirmed  = "clear_all deletes every student; call again with confirm set to true"
	McpColumnOutOfRange   = "column must be 1 or greater"

	McpListStudentsDescription  = "List students with their grades. An optional query filters by a case-insensitive substring of \"surname name\"."
	McpAddStudentDescription    = "Add a student. Surname and name are trimmed; at least one must be non-blank."
	McpRemoveStudentDescription = "Remove a student by id. Unknown ids are ignored."
	McpSetGradeDescription      = "Set one grade cell. column is 1-based; value is one of \"\", 2, 3, 4, 5, N/A."
	McpAddColumnDescription     = "Append an empty grade column to every student."
	McpRemoveColumnDescription  = "Drop the last grade column from every student. Does nothing when there are no columns."
	McpClearAllDescription      = "Delete every student. Requires confirm: true."
	McpExportCSVDescription     = "Render the roster as CSV. Fails when the roster is empty."
	McpExportJSONDescription    = "Render the roster as pretty-printed JSON."
)
