package utils

import "strings"

// NormalizeOptional trims s and returns nil when nothing remains, so
// optional form fields are stored as NULL rather than empty strings.
func NormalizeOptional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
