package messages

// Terminal editor messages.
const (
	TUITitle              = "Gradebook"
	TUISearchPlaceholder  = "search surname or name"
	TUISurnamePlaceholder = "Surname"
	TUINamePlaceholder    = "Name"
	TUIAddTitle           = "New student (tab switches field, enter saves, esc cancels)"
	TUIConfirmHintFmt     = "%s (y/n)"
	TUICancelled          = "Cancelled."
	TUIEmptyRoster        = "No students yet. Press a to add one."
	TUINoMatches          = "No students match the search."
	TUIStatusFmt          = "%d of %d students, %d grade columns"
	TUIExportedFmt        = "Exported to %s"
	TUIColumnHeaderFmt    = "Grade %d"
	TUIHeaderSurname      = "Surname"
	TUIHeaderName         = "Name"
)
