// Package goal holds the strive data model and the computations derived from
// it: progress, streaks, celebrations, and calendar scheduling. Everything in
// this package outside store.go is a pure function over plain values so each
// engine can be tested with hand-built fixtures.
package goal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/strivecli/strive/internal/dateutil"
)

// Record is a single dated log entry owned by its goal. Value is nil for
// check-in goals and for "blank" logs on numeric goals, which are permitted
// and contribute nothing numerically.
type Record struct {
	ID    string   `json:"id"`
	Date  string   `json:"date"` // date-only
	Value *float64 `json:"value,omitempty"`
	Note  string   `json:"note,omitempty"`
}

// Goal is a tracked objective. Dates are date-only strings; the empty string
// means absent for TargetDate and ReachedAt.
type Goal struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Note           string   `json:"note"`
	IconKey        string   `json:"iconKey"`
	Colour         string   `json:"colour"`
	StartDate      string   `json:"startDate"`
	TargetDate     string   `json:"targetDate,omitempty"`
	StartingNumber *float64 `json:"startingNumber,omitempty"`
	TargetNumber   *float64 `json:"targetNumber,omitempty"`
	Unit           string   `json:"unit"`
	Cumulative     bool     `json:"cumulative"`
	Records        []Record `json:"records"`
	ReachedAt      string   `json:"reachedAt,omitempty"`
	Order          int      `json:"order"`

	// Calendar planning.
	PlanEnabled   bool     `json:"planEnabled"`
	PlanInterval  string   `json:"planInterval,omitempty"` // IntervalWeekly, IntervalFortnightly, IntervalMonthly, or "" for one-off
	PlanDays      []int    `json:"planDays,omitempty"`     // Monday=0 .. Sunday=6
	CalendarName  string   `json:"calendarName,omitempty"`
	PlanSkipDates []string `json:"planSkipDates,omitempty"`
}

// HasUnit reports whether the goal carries a display unit.
func (g *Goal) HasUnit() bool {
	return strings.TrimSpace(g.Unit) != ""
}

// HasTarget reports whether the goal has a target number.
func (g *Goal) HasTarget() bool {
	return g.TargetNumber != nil
}

// HasStart reports whether the goal has an explicit starting number.
func (g *Goal) HasStart() bool {
	return g.StartingNumber != nil
}

// IsCheckIn reports whether the goal is a check-in goal: the user expressed
// no numeric intent at all (no unit, no target, no starting number).
func (g *Goal) IsCheckIn() bool {
	return !g.HasUnit() && !g.HasTarget() && !g.HasStart()
}

// Completed reports whether the goal has reached its target (or was marked
// complete manually).
func (g *Goal) Completed() bool {
	return g.ReachedAt != ""
}

// DisplayName returns the label shown on the calendar: the calendar override
// when set, otherwise the goal name.
func (g *Goal) DisplayName() string {
	if n := strings.TrimSpace(g.CalendarName); n != "" {
		return n
	}
	return g.Name
}

// HasRecordOn reports whether the goal has at least one record on the given
// day.
func (g *Goal) HasRecordOn(dateOnly string) bool {
	for _, r := range g.Records {
		if r.Date == dateOnly {
			return true
		}
	}
	return false
}

// SkipsDate reports whether dateOnly is excluded from the goal's recurring
// schedule.
func (g *Goal) SkipsDate(dateOnly string) bool {
	for _, d := range g.PlanSkipDates {
		if d == dateOnly {
			return true
		}
	}
	return false
}

// sortedByDateAsc returns a copy of records in chronological order. The sort
// is stable, so records on the same day keep insertion order.
func sortedByDateAsc(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// sortedByDateDesc returns a copy of records in reverse chronological order.
func sortedByDateDesc(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// Validate applies the form-level rules that block a goal save. These are the
// only errors that halt a user-initiated mutation.
func Validate(g *Goal) error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("a goal needs a name")
	}
	if !dateutil.IsValid(g.StartDate) {
		return fmt.Errorf("invalid start date %q — use YYYY-MM-DD", g.StartDate)
	}
	if g.TargetDate != "" {
		if !dateutil.IsValid(g.TargetDate) {
			return fmt.Errorf("invalid target date %q — use YYYY-MM-DD", g.TargetDate)
		}
		if g.TargetDate < g.StartDate {
			return fmt.Errorf("target date %s is before start date %s", g.TargetDate, g.StartDate)
		}
	}
	if g.HasTarget() && !g.HasStart() {
		return fmt.Errorf("a starting number is required when a target number is set")
	}
	return nil
}
