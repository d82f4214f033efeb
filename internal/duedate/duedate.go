// Package duedate canonicalizes todo due dates.
//
// Due dates are stored as 12:00:00 UTC on the calendar day the caller
// meant. A date stored as local midnight can shift to the previous day
// when it is read back in UTC; anchoring at noon keeps the calendar
// date intact across timezone round trips.
package duedate

import (
	"fmt"
	"time"
)

// Normalize maps any instant to noon UTC on that instant's calendar
// day. The day is taken in the input's own location, so a client
// sending 2023-10-27T23:30:00+02:00 still means the 27th.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// ParseInput accepts a bare date (2006-01-02) or an RFC 3339 date-time
// and returns the normalized noon-UTC instant.
func ParseInput(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Normalize(t), nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Normalize(t), nil
}
