package utils

import (
	"time"
)

const entryTimestampLayout = "2006-01-02 15:04:05"

// FormatEntryTimestamp returns the zero-padded "YYYY-MM-DD HH:MM:SS" form of
// an archive entry timestamp, or the empty string for the zero time.
// Zip timestamps carry no zone, so the value is formatted as recorded.
func FormatEntryTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(entryTimestampLayout)
}
