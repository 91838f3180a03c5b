// Package timestamp anchors time-of-day strings from log lines to
// absolute instants using the date key of the stream they came from.
package timestamp

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	layout     = "2006-01-02 15:04:05"
)

// Resolve combines a YYYY-MM-DD date and an HH:MM:SS time of day into a
// single instant. It fails when either string is not fixed-width numeric
// or denotes an invalid calendar or clock value. Callers skip the line
// the failure came from; nothing aborts the stream.
func Resolve(date, timeOfDay string) (time.Time, error) {
	if len(date) != len(dateLayout) || len(timeOfDay) != 8 {
		return time.Time{}, fmt.Errorf("timestamp: malformed %q %q", date, timeOfDay)
	}
	ts, err := time.Parse(layout, date+" "+timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp: resolve %q %q: %w", date, timeOfDay, err)
	}
	return ts, nil
}

// ValidDate reports whether date is a well-formed YYYY-MM-DD calendar date.
func ValidDate(date string) bool {
	if len(date) != len(dateLayout) {
		return false
	}
	_, err := time.Parse(dateLayout, date)
	return err == nil
}
