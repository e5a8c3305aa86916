package goal

import (
	"fmt"
	"time"

	"github.com/strivecli/strive/internal/dateutil"
)

// Celebration is a celebratory message triggered by a record addition.
type Celebration struct {
	Title   string
	Message string
}

// Streak lengths and total log counts that earn a celebration.
var (
	streakMilestones = map[int]bool{3: true, 7: true, 10: true, 14: true, 20: true, 30: true, 50: true, 75: true, 100: true}
	logMilestones    = map[int]bool{1: true, 5: true, 10: true, 25: true, 50: true, 100: true, 200: true}
)

// comebackGapDays is the minimum gap, in days, between the previous latest
// record and a new one for the "welcome back" celebration.
const comebackGapDays = 30

// celebrationInput captures the before/after state of a single record
// addition.
type celebrationInput struct {
	before  *Goal
	after   *Goal
	newDate string // date-only of the record just added
	now     time.Time
}

// celebrationRules are evaluated in priority order; the first match wins, so
// at most one celebration fires per record addition. Streak milestones beat
// log-count milestones beat comebacks.
var celebrationRules = []func(celebrationInput) *Celebration{
	streakMilestone,
	logCountMilestone,
	comeback,
}

// EvaluateCelebration decides whether adding a record earns a celebration,
// comparing the goal state before and after the addition. Returns nil when
// nothing fires. The target-reached transition is computed independently by
// the caller and takes the notification slot when both apply.
func EvaluateCelebration(before, after *Goal, newDate string, now time.Time) *Celebration {
	in := celebrationInput{before: before, after: after, newDate: newDate, now: now}
	for _, rule := range celebrationRules {
		if c := rule(in); c != nil {
			return c
		}
	}
	return nil
}

func streakMilestone(in celebrationInput) *Celebration {
	prev := ComputeStreak(in.before.Records, in.now)
	next := ComputeStreak(in.after.Records, in.now)
	if next == prev || !streakMilestones[next] {
		return nil
	}
	msg := fmt.Sprintf("You have logged %d days in a row. Keep it going.", next)
	if Remaining(in.after) != nil {
		msg = fmt.Sprintf("You have logged %d days in a row. You are getting closer to %q.", next, in.after.Name)
	}
	return &Celebration{
		Title:   fmt.Sprintf("Streak: %d days!", next),
		Message: msg,
	}
}

func logCountMilestone(in celebrationInput) *Celebration {
	prev := len(in.before.Records)
	next := len(in.after.Records)
	if next == prev || !logMilestones[next] {
		return nil
	}
	return &Celebration{
		Title:   fmt.Sprintf("%d logs!", next),
		Message: fmt.Sprintf("That is %d times you have shown up for %q.", next, in.after.Name),
	}
}

func comeback(in celebrationInput) *Celebration {
	if len(in.before.Records) == 0 {
		return nil
	}
	latest := sortedByDateDesc(in.before.Records)[0].Date
	if dateutil.DaysBetween(latest, in.newDate) < comebackGapDays {
		return nil
	}
	return &Celebration{
		Title:   "Welcome back",
		Message: fmt.Sprintf("Nice return. One log is all it takes to restart momentum on %q.", in.after.Name),
	}
}
