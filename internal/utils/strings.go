package utils

import "fmt"

// TruncateString truncates s to maxLen characters, adding a suffix with the
// original length so logs stay readable without losing sizing information.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
