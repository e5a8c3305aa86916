package goal

import (
	"fmt"
	"strings"

	"github.com/strivecli/strive/internal/dateutil"
)

// Valid plan interval values. The empty string means a one-off plan: due only
// on its start date — unless weekdays are chosen, which makes it an implicit
// weekly plan.
const (
	IntervalNone        = ""
	IntervalWeekly      = "weekly"
	IntervalFortnightly = "fortnightly"
	IntervalMonthly     = "monthly"
)

// ParseInterval validates and normalizes a plan interval string.
// Accepts short aliases: w/week/weekly, f/fortnight/fortnightly, m/month/monthly.
func ParseInterval(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return IntervalNone, nil
	case "w", "week", "weekly":
		return IntervalWeekly, nil
	case "f", "fortnight", "fortnightly":
		return IntervalFortnightly, nil
	case "m", "month", "monthly":
		return IntervalMonthly, nil
	default:
		return "", fmt.Errorf("invalid interval %q — valid values: weekly (w), fortnightly (f), monthly (m)", s)
	}
}

// IsScheduled reports whether a recurring goal is due on the given day.
//
// Rules, in order:
//   - plan disabled, skip dates, days before the start date, and days after a
//     completed goal's completion day are never due (completed goals stay
//     visible up to and including the day they were reached)
//   - no interval: due on the start date only, unless weekdays were chosen,
//     which recurs weekly on those days
//   - weekly: due on the chosen weekdays (or the start date's weekday if none
//     were chosen)
//   - fortnightly: weekly, but only on even weeks counted from the start date
//   - monthly: due when the day-of-month matches the start date's, with no
//     weekday filtering
func IsScheduled(g *Goal, dateOnly string) bool {
	if !g.PlanEnabled {
		return false
	}
	if g.SkipsDate(dateOnly) {
		return false
	}

	start := g.StartDate
	if start == "" {
		start = dateutil.Today()
	}
	if dateOnly < start {
		return false
	}
	if g.Completed() && dateOnly > g.ReachedAt {
		return false
	}

	weekday := dateutil.WeekdayIndex(dateOnly)
	effectiveDays := g.PlanDays
	if len(effectiveDays) == 0 {
		effectiveDays = []int{dateutil.WeekdayIndex(start)}
	}
	onPlanDay := false
	for _, d := range effectiveDays {
		if d == weekday {
			onPlanDay = true
			break
		}
	}

	switch g.PlanInterval {
	case IntervalNone:
		// One-off: start date only, or implicit weekly once weekdays exist.
		if len(g.PlanDays) == 0 {
			return dateOnly == start
		}
		return onPlanDay
	case IntervalWeekly:
		return onPlanDay
	case IntervalFortnightly:
		weeks := dateutil.DaysBetween(start, dateOnly) / 7
		return weeks%2 == 0 && onPlanDay
	default:
		// Monthly. Unrecognized intervals from imported data land here too.
		startT, ok := dateutil.FromDateOnly(start)
		if !ok {
			return false
		}
		dateT, ok := dateutil.FromDateOnly(dateOnly)
		if !ok {
			return false
		}
		return dateT.Day() == startT.Day()
	}
}

// ScheduledOn filters goals to those due on the given day, for rendering a
// per-day task list. Pure re-derivation; no cached state.
func ScheduledOn(goals []Goal, dateOnly string) []Goal {
	var due []Goal
	for i := range goals {
		if IsScheduled(&goals[i], dateOnly) {
			due = append(due, goals[i])
		}
	}
	return due
}
