package goal

import (
	"time"

	"github.com/strivecli/strive/internal/dateutil"
)

// ComputeStreak counts the consecutive calendar days ending today (relative
// to now) that each have at least one record. A day with no record breaks the
// chain; if today itself has no record the streak is 0, regardless of prior
// days.
func ComputeStreak(records []Record, now time.Time) int {
	if len(records) == 0 {
		return 0
	}

	hasRecordThatDay := make(map[string]bool, len(records))
	for _, r := range records {
		hasRecordThatDay[r.Date] = true
	}

	today := dateutil.ToDateOnly(now)
	if !hasRecordThatDay[today] {
		return 0
	}

	streak := 0
	for cursor := today; hasRecordThatDay[cursor]; cursor = dateutil.AddDays(cursor, -1) {
		streak++
	}
	return streak
}
