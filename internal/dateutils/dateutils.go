// Package dateutils provides the date handling used by the date normalization step.
package dateutils

import (
	"regexp"
	"strings"
	"time"
)

// DateLayoutISO is the ISODate layout (YYYY-MM-DD).
const DateLayoutISO = "2006-01-02"

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims a date string and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// TruncateDateTime returns the calendar date of an ISODateTime value such as
// "2026-02-28T10:15:00+01:00". Time of day and offset are dropped, never
// converted, so the date stays the one the bank wrote. ok is false when the
// value does not start with a valid YYYY-MM-DD date.
func TruncateDateTime(value string) (date string, ok bool) {
	value = CleanDateString(value)
	if value == "" {
		return "", false
	}

	date = value
	if i := strings.IndexAny(value, "Tt "); i >= 0 {
		date = value[:i]
	}

	if !IsISODate(date) {
		return "", false
	}
	return date, true
}

// IsISODate reports whether s is a valid YYYY-MM-DD date.
func IsISODate(s string) bool {
	if len(s) != len(DateLayoutISO) {
		return false
	}
	_, err := time.Parse(DateLayoutISO, s)
	return err == nil
}
