// ABOUTME: Calendar-day helpers for date-scoped records.
// ABOUTME: Dates are YYYY-MM-DD strings in the caller's local day, never normalized.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for plan and check-in dates.
const DateLayout = "2006-01-02"

// Today returns now's calendar day in now's location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// Tomorrow returns the calendar day after now in now's location.
func Tomorrow(now time.Time) string {
	return now.AddDate(0, 0, 1).Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}
