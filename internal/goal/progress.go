package goal

import "math"

// Direction is the direction of travel toward a target.
type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

// Progress is the derived progress state of a goal. Start, Current, and
// Target are nil when no value exists for them.
type Progress struct {
	Direction   Direction
	Start       *float64
	Current     *float64
	Target      *float64
	Fraction    float64 // normalized to [0, 1]
	Reached     bool
	RecordCount int
}

// numericRecords filters to records carrying a numeric value.
func numericRecords(records []Record) []Record {
	var out []Record
	for _, r := range records {
		if r.Value != nil {
			out = append(out, r)
		}
	}
	return out
}

// latestNumericValue returns the value of the most recent numeric record, or
// nil when none exists. Same-day ties go to the latest-inserted record.
func latestNumericValue(records []Record) *float64 {
	for _, r := range sortedByDateDesc(records) {
		if r.Value != nil {
			v := *r.Value
			return &v
		}
	}
	return nil
}

// firstNumericValue returns the value of the earliest numeric record, or nil.
func firstNumericValue(records []Record) *float64 {
	for _, r := range sortedByDateAsc(records) {
		if r.Value != nil {
			v := *r.Value
			return &v
		}
	}
	return nil
}

// sumNumericValues totals all numeric record values.
func sumNumericValues(records []Record) float64 {
	var sum float64
	for _, r := range records {
		if r.Value != nil {
			sum += *r.Value
		}
	}
	return sum
}

// CurrentValue returns the goal's current value, parameterized by the
// Cumulative flag so that progress math and displayed totals can never
// disagree. Cumulative goals total startingNumber (default 0) plus the sum of
// all numeric record values; point-sample goals use the most recent numeric
// record, falling back to the starting number. Returns nil when the goal has
// no numeric data at all.
func CurrentValue(g *Goal) *float64 {
	numeric := numericRecords(g.Records)
	if g.Cumulative {
		if !g.HasStart() && len(numeric) == 0 {
			return nil
		}
		total := sumNumericValues(g.Records)
		if g.HasStart() {
			total += *g.StartingNumber
		}
		return &total
	}
	if v := latestNumericValue(g.Records); v != nil {
		return v
	}
	if g.HasStart() {
		v := *g.StartingNumber
		return &v
	}
	return nil
}

// InferDirection determines the direction of travel. The start candidate is
// the explicit starting number when present, else the earliest numeric record
// value. With no candidate (or no target) the direction defaults to Increase;
// a start equal to the target is also Increase.
func InferDirection(g *Goal) Direction {
	start := g.StartingNumber
	if start == nil {
		start = firstNumericValue(g.Records)
	}
	if start == nil || g.TargetNumber == nil {
		return Increase
	}
	if *start > *g.TargetNumber {
		return Decrease
	}
	return Increase
}

// clamp01 clamps x to [0, 1]; NaN clamps to 0.
func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}

// ComputeProgress derives the full progress state of a goal.
//
// With no target the result is display-only: direction Increase, fraction 0,
// never reached. With a target but no baseline at all (no starting number and
// no numeric records) the result carries only the target — insufficient data.
// Otherwise the baseline is the explicit starting number or the earliest
// numeric record, the direction follows start vs target, and the fraction is
// the normalized distance covered, clamped to [0, 1].
func ComputeProgress(g *Goal) Progress {
	recordCount := len(g.Records)
	numeric := numericRecords(g.Records)
	current := CurrentValue(g)

	if !g.HasTarget() {
		var start *float64
		if g.HasStart() {
			v := *g.StartingNumber
			start = &v
		}
		return Progress{
			Direction:   Increase,
			Start:       start,
			Current:     current,
			Fraction:    0,
			Reached:     false,
			RecordCount: recordCount,
		}
	}

	target := *g.TargetNumber
	if !g.HasStart() && len(numeric) == 0 {
		return Progress{
			Direction:   Increase,
			Target:      &target,
			Fraction:    0,
			Reached:     false,
			RecordCount: recordCount,
		}
	}

	var start float64
	if g.HasStart() {
		start = *g.StartingNumber
	} else {
		start = *firstNumericValue(g.Records)
	}

	dir := Increase
	if start > target {
		dir = Decrease
	}

	cur := *current
	var fraction float64
	var reached bool
	if dir == Increase {
		if denom := target - start; denom != 0 {
			fraction = (cur - start) / denom
		}
		reached = cur >= target
	} else {
		if denom := start - target; denom != 0 {
			fraction = (start - cur) / denom
		}
		reached = cur <= target
	}

	return Progress{
		Direction:   dir,
		Start:       &start,
		Current:     &cur,
		Target:      &target,
		Fraction:    clamp01(fraction),
		Reached:     reached,
		RecordCount: recordCount,
	}
}

// UpdateStartingNumber returns the more conservative of the current starting
// number and candidate, by inferred direction: an increasing goal keeps the
// lower of the two so the baseline never creeps up and inflates apparent
// progress; a decreasing goal keeps the higher. With no starting number yet,
// the candidate is adopted directly.
func UpdateStartingNumber(g *Goal, candidate float64) float64 {
	if !g.HasStart() {
		return candidate
	}
	current := *g.StartingNumber
	if InferDirection(g) == Increase {
		if candidate < current {
			return candidate
		}
		return current
	}
	if candidate > current {
		return candidate
	}
	return current
}

// Remaining returns the signed distance left to the target by direction, or
// nil when the goal has no target or no current value.
func Remaining(g *Goal) *float64 {
	if !g.HasTarget() {
		return nil
	}
	current := CurrentValue(g)
	if current == nil {
		return nil
	}
	target := *g.TargetNumber
	var rem float64
	if InferDirection(g) == Increase {
		rem = target - *current
	} else {
		rem = *current - target
	}
	return &rem
}
