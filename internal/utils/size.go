package utils

import "fmt"

// FormatEntrySize converts a byte length into a human-readable unit string
// such as "1.2 KB". Binary scaling, one fractional digit above bytes.
func FormatEntrySize(bytes int64) string {
	if bytes < 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(units)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", value, units[unitIndex])
}
