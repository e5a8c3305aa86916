package goal

import (
	"testing"
	"time"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func checkIn(date string) Record {
	return Record{ID: "r-" + date, Date: date}
}

func TestComputeStreak_Empty(t *testing.T) {
	if got := ComputeStreak(nil, mustDate("2026-03-05")); got != 0 {
		t.Fatalf("streak = %d, want 0 for no records", got)
	}
}

func TestComputeStreak_TodayOnly(t *testing.T) {
	records := []Record{checkIn("2026-03-05")}
	if got := ComputeStreak(records, mustDate("2026-03-05")); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}

func TestComputeStreak_ThreeConsecutiveDays(t *testing.T) {
	records := []Record{
		checkIn("2026-03-05"),
		checkIn("2026-03-04"),
		checkIn("2026-03-03"),
	}
	if got := ComputeStreak(records, mustDate("2026-03-05")); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestComputeStreak_NoRecordToday(t *testing.T) {
	// Yesterday and before don't matter — no record today means streak 0.
	records := []Record{
		checkIn("2026-03-04"),
		checkIn("2026-03-03"),
		checkIn("2026-03-02"),
	}
	if got := ComputeStreak(records, mustDate("2026-03-05")); got != 0 {
		t.Errorf("streak = %d, want 0 without a record today", got)
	}
}

func TestComputeStreak_GapBreaksChain(t *testing.T) {
	records := []Record{
		checkIn("2026-03-05"),
		checkIn("2026-03-04"),
		// gap on 2026-03-03
		checkIn("2026-03-02"),
		checkIn("2026-03-01"),
	}
	if got := ComputeStreak(records, mustDate("2026-03-05")); got != 2 {
		t.Errorf("streak = %d, want 2 (chain broken by gap)", got)
	}
}

func TestComputeStreak_MultipleRecordsSameDay(t *testing.T) {
	records := []Record{
		checkIn("2026-03-05"),
		{ID: "r2", Date: "2026-03-05", Note: "second log"},
		checkIn("2026-03-04"),
	}
	if got := ComputeStreak(records, mustDate("2026-03-05")); got != 2 {
		t.Errorf("streak = %d, want 2 (same-day records count once)", got)
	}
}

func TestComputeStreak_CrossesMonthBoundary(t *testing.T) {
	records := []Record{
		checkIn("2026-03-01"),
		checkIn("2026-02-28"),
		checkIn("2026-02-27"),
	}
	if got := ComputeStreak(records, mustDate("2026-03-01")); got != 3 {
		t.Errorf("streak = %d, want 3 across month boundary", got)
	}
}
