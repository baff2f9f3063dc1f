// Package util provides shared utility functions used across the codebase.
package util

import "fmt"

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// PreviewValue renders an arbitrary payload value as a short string suitable
// for debug logging. Large values are truncated so a single log entry cannot
// balloon with message payloads.
func PreviewValue(v any, maxLen int) string {
	if v == nil {
		return "<nil>"
	}
	return TruncateString(fmt.Sprintf("%v", v), maxLen)
}
