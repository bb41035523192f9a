package common

import "time"

// TruncateToDateUTC truncates the given time to midnight (00:00:00) in UTC.
// Cycle windows are anchored to UTC dates so that daily challenges reset at
// the same instant regardless of the event source's timezone.
func TruncateToDateUTC(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// GetCurrentDateUTC returns the current date in UTC, truncated to midnight.
func GetCurrentDateUTC() time.Time {
	return TruncateToDateUTC(time.Now())
}
