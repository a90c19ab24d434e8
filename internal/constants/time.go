package constants

const (
	// TimestampFormat is the local ISO-8601 layout used for persisted timestamps.
	// No offset is written; values are interpreted in the configured timezone.
	TimestampFormat = "2006-01-02T15:04:05.000000"

	// DisplayTimeFormat is used when showing entry timestamps to the user
	DisplayTimeFormat = "2006-01-02 15:04"

	// DefaultTimezone uses the system local timezone
	DefaultTimezone = "Local"
)
