package messages

// Command layer confirmation prompts.
const (
	CommandConfirmRemove    = "Delete this student permanently?"
	CommandConfirmRemoveFmt = "Delete %s permanently?"
	CommandConfirmClear     = "Clear all students and grades?"
	CommandUnknownFmt       = "unknown command %T"
	CommandStoreRequired    = "roster store is required"
)
