// Package biztime centralizes time handling. All storage and transport
// use UTC; webhook payloads carry RFC3339 timestamps.
package biztime

import (
	"fmt"
	"time"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatRFC3339 formats a UTC time for transport using RFC3339 format.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseRFC3339 parses an RFC3339 timestamp into UTC.
func ParseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp format %q: %w", s, err)
	}
	return t.UTC(), nil
}

// UnixSeconds formats a time as Unix seconds, the format used by
// signed webhook timestamp headers.
func UnixSeconds(t time.Time) string {
	return fmt.Sprintf("%d", t.Unix())
}
