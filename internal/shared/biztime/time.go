// Package biztime keeps every stored timestamp in UTC.
package biztime

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of date-only fields such as a ticket due date.
const DateLayout = time.DateOnly

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate accepts either a plain date or an RFC3339 timestamp and returns
// midnight UTC of that day. An empty string yields nil.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(DateLayout, value); err == nil {
		d := t.UTC()
		return &d, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d, nil
}

// FormatDate renders a date-only value, or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
