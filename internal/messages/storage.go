package messages

// Storage backend messages.
const (
	StorageBackendUnknownFmt = "unknown storage backend %q (supported: file, sqlite, memory)"
	StorageInvalidKeyFmt     = "invalid storage key %q"
	StorageCreateDirFmt      = "create storage dir %s: %w"
	StorageReadFmt           = "read %s: %w"
	StorageWriteFmt          = "write %s: %w"
	StorageDeleteFmt         = "delete %s: %w"
	StorageOpenLockFmt       = "open lock %s: %w"
	StorageLockFmt           = "lock %s: %w"
	StorageLockTimeoutFmt    = "timed out after %s waiting for storage lock"
	StorageOpenDBFmt         = "open sqlite %s: %w"
	StorageInitDBFmt         = "init sqlite schema: %w"
	StorageClosed            = "storage is closed"
)
