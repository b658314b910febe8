// utils/timeutil.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

func NowUnixSeconds() int64 { return time.Now().Unix() }

// DateOnly drops the time of day, keeping the calendar date as seen in t's
// own location, and returns it as UTC midnight.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StoredDate reads a date persisted as UTC midnight. Drivers may hand the
// value back in time.Local, so the calendar date is taken in UTC.
func StoredDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return DateOnly(t.UTC())
}

func SameStoredDate(a, b time.Time) bool {
	return StoredDate(a).Equal(StoredDate(b))
}

// InclusiveDays counts calendar days in [start, end].
func InclusiveDays(start, end time.Time) int {
	s, e := DateOnly(start), DateOnly(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// ParseDateOrTime accepts "2006-01-02" or RFC3339.
func ParseDateOrTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC3339, got %q", s)
	}
	return t, nil
}

// NormalizeTimeOfDay validates an "HH:MM" string.
func NormalizeTimeOfDay(s string) (string, error) {
	t, err := time.Parse(TimeOfDayLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("expected HH:MM, got %q", s)
	}
	return t.Format(TimeOfDayLayout), nil
}

// FormatDate renders a stored date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return StoredDate(t).Format(DateLayout)
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
