package domain

import "time"

// TimestampLayout is ISO-8601 with fixed millisecond precision, so that
// lexicographic order of formatted UTC timestamps is chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t in UTC using TimestampLayout
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
