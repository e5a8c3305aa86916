// Package dateutil provides the canonical date-only representation used
// throughout strive. A date-only value is a "YYYY-MM-DD" string; when a full
// timestamp is needed it is anchored at noon UTC so that timezone drift can
// never shift it across a day boundary. Records, streaks, and the calendar
// scheduler all compare dates at this granularity — time of day is never
// semantically meaningful.
package dateutil

import (
	"regexp"
	"time"
)

// Layout is the date-only format used everywhere in strive.
const Layout = "2006-01-02"

var dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Today returns the current local day as a date-only string.
func Today() string {
	return ToDateOnly(time.Now())
}

// ToDateOnly strips the time-of-day from t using its local calendar fields.
func ToDateOnly(t time.Time) string {
	return t.Format(Layout)
}

// FromDateOnly strictly parses a date-only string. The returned time is
// anchored at noon UTC. ok is false for any malformed input; the function
// never panics.
func FromDateOnly(s string) (time.Time, bool) {
	if !dateOnlyRe.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), true
}

// IsValid reports whether s is a well-formed date-only string.
func IsValid(s string) bool {
	_, ok := FromDateOnly(s)
	return ok
}

// AddDays performs calendar-day arithmetic on a date-only string.
//
// On invalid input AddDays falls back to today rather than failing: every
// in-repo caller passes dates that already round-tripped through
// FromDateOnly, so the fallback is unreachable in practice and an error
// return would only complicate the streak and scheduler loops.
func AddDays(dateOnly string, deltaDays int) string {
	t, ok := FromDateOnly(dateOnly)
	if !ok {
		return Today()
	}
	return ToDateOnly(t.AddDate(0, 0, deltaDays))
}

// DaysBetween returns the signed day count from a to b (positive when b is
// after a). Returns 0 if either input is invalid.
func DaysBetween(a, b string) int {
	ta, ok := FromDateOnly(a)
	if !ok {
		return 0
	}
	tb, ok := FromDateOnly(b)
	if !ok {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// WeekdayIndex returns the Monday-based weekday of a date-only string:
// Monday=0 .. Sunday=6. Returns 0 for invalid input.
func WeekdayIndex(dateOnly string) int {
	t, ok := FromDateOnly(dateOnly)
	if !ok {
		return 0
	}
	return (int(t.Weekday()) + 6) % 7
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayIndex returns the Monday-based weekday of the first day of the
// given month. Used to pad the calendar grid.
func FirstWeekdayIndex(year int, month time.Month) int {
	first := time.Date(year, month, 1, 12, 0, 0, 0, time.UTC)
	return (int(first.Weekday()) + 6) % 7
}

// FormatDisplay renders a date-only string for display, e.g. "Mar 5, 2026".
// Invalid input is returned unchanged.
func FormatDisplay(dateOnly string) string {
	t, ok := FromDateOnly(dateOnly)
	if !ok {
		return dateOnly
	}
	return t.Format("Jan 2, 2006")
}
