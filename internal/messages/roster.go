package messages

// Roster store messages.
const (
	RosterNameRequired    = "enter a surname or a name"
	RosterInvalidGrade    = "invalid grade"
	RosterInvalidGradeFmt = "%q (choose one of -, 2, 3, 4, 5, N/A)"
	RosterKVRequired      = "roster storage is required"
	RosterLoadFailedFmt   = "load roster: %w"
	RosterEncodeFailedFmt = "encode roster: %w"
	RosterSaveFailedFmt   = "save roster: %w"
	RosterClearFailedFmt  = "clear roster: %w"
)
