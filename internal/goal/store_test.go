package goal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/strivecli/strive/internal/store"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := store.OpenPath(filepath.Join(t.TempDir(), "strive.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.Conn())
}

func mustAdd(t *testing.T, s *Store, g Goal) *Goal {
	t.Helper()
	if err := s.Add(&g); err != nil {
		t.Fatalf("adding goal %q: %v", g.Name, err)
	}
	return &g
}

func TestStoreAddGet(t *testing.T) {
	s := testStore(t)
	g := mustAdd(t, s, Goal{
		Name:           "Save for bike",
		Note:           "commuter",
		IconKey:        "bike",
		Colour:         "green",
		StartDate:      "2026-03-02",
		TargetDate:     "2026-09-01",
		StartingNumber: fp(0),
		TargetNumber:   fp(800),
		Unit:           "€",
		Cumulative:     true,
		PlanEnabled:    true,
		PlanInterval:   IntervalWeekly,
		PlanDays:       []int{0, 4},
		CalendarName:   "Bike fund",
		PlanSkipDates:  []string{"2026-04-06"},
	})
	if g.ID == "" {
		t.Fatal("Add must assign an ID")
	}

	got, err := s.Get(g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != g.Name || got.TargetDate != "2026-09-01" || !got.Cumulative {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.StartingNumber == nil || *got.StartingNumber != 0 {
		t.Error("starting number 0 must survive, distinct from absent")
	}
	if got.TargetNumber == nil || *got.TargetNumber != 800 {
		t.Errorf("target number = %v", got.TargetNumber)
	}
	if len(got.PlanDays) != 2 || got.PlanDays[0] != 0 || got.PlanDays[1] != 4 {
		t.Errorf("plan days = %v", got.PlanDays)
	}
	if len(got.PlanSkipDates) != 1 || got.PlanSkipDates[0] != "2026-04-06" {
		t.Errorf("skip dates = %v", got.PlanSkipDates)
	}
}

func TestStoreListOrdering(t *testing.T) {
	s := testStore(t)
	first := mustAdd(t, s, Goal{Name: "First", StartDate: "2026-03-02"})
	mustAdd(t, s, Goal{Name: "Second", StartDate: "2026-03-02"})
	mustAdd(t, s, Goal{Name: "Third", StartDate: "2026-03-02"})

	if err := s.MarkComplete(first.ID); err != nil {
		t.Fatal(err)
	}

	goals, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 3 {
		t.Fatalf("got %d goals", len(goals))
	}
	// Completed goals sink below active ones regardless of manual order.
	if goals[0].Name != "Second" || goals[1].Name != "Third" || goals[2].Name != "First" {
		t.Errorf("order = %s, %s, %s", goals[0].Name, goals[1].Name, goals[2].Name)
	}
}

func TestStoreResolve(t *testing.T) {
	s := testStore(t)
	g := mustAdd(t, s, Goal{Name: "Read more", StartDate: "2026-03-02"})
	mustAdd(t, s, Goal{Name: "Run more", StartDate: "2026-03-02"})

	byID, err := s.Resolve(g.ID)
	if err != nil || byID.ID != g.ID {
		t.Fatalf("resolve by ID: %v", err)
	}
	byPrefix, err := s.Resolve(g.ID[:8])
	if err != nil || byPrefix.ID != g.ID {
		t.Fatalf("resolve by prefix: %v", err)
	}
	byName, err := s.Resolve("read MORE")
	if err != nil || byName.ID != g.ID {
		t.Fatalf("resolve by name is case-insensitive: %v", err)
	}
	if _, err := s.Resolve("swim"); err == nil {
		t.Error("unknown reference must fail")
	}
}

func TestStoreMove(t *testing.T) {
	s := testStore(t)
	mustAdd(t, s, Goal{Name: "A", StartDate: "2026-03-02"})
	b := mustAdd(t, s, Goal{Name: "B", StartDate: "2026-03-02"})

	if err := s.Move(b.ID, -1); err != nil {
		t.Fatal(err)
	}
	goals, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if goals[0].Name != "B" || goals[1].Name != "A" {
		t.Errorf("after move up: %s, %s", goals[0].Name, goals[1].Name)
	}

	// Moving past the top is a no-op, not an error.
	if err := s.Move(b.ID, -1); err != nil {
		t.Fatal(err)
	}
	goals, _ = s.List()
	if goals[0].Name != "B" {
		t.Error("move past the top must not change anything")
	}
}

func TestStoreDuplicate(t *testing.T) {
	s := testStore(t)
	src := mustAdd(t, s, Goal{
		Name:           "Pushups",
		StartDate:      "2026-03-02",
		StartingNumber: fp(0),
		TargetNumber:   fp(100),
		Cumulative:     true,
	})
	if _, _, err := s.AddRecord(src.ID, rec("2026-03-02", fp(20)), time.Now()); err != nil {
		t.Fatal(err)
	}

	clone, err := s.Duplicate(src.ID, "Pushups v2")
	if err != nil {
		t.Fatal(err)
	}
	if clone.ID == src.ID {
		t.Error("duplicate must mint a fresh ID")
	}
	got, err := s.Get(clone.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Pushups v2" || len(got.Records) != 0 || got.Completed() {
		t.Errorf("clone = %+v", got)
	}
	if got.TargetNumber == nil || *got.TargetNumber != 100 {
		t.Error("configuration must carry over to the clone")
	}
}

func TestStoreAddRecordReachedTransition(t *testing.T) {
	s := testStore(t)
	g := mustAdd(t, s, Goal{
		Name:           "Savings",
		StartDate:      "2026-03-02",
		StartingNumber: fp(0),
		TargetNumber:   fp(100),
		Cumulative:     true,
	})
	other := mustAdd(t, s, Goal{Name: "Other", StartDate: "2026-03-02"})

	_, reached, err := s.AddRecord(g.ID, rec("2026-03-02", fp(60)), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if reached {
		t.Error("60/100 is not reached")
	}

	_, reached, err = s.AddRecord(g.ID, rec("2026-03-05", fp(40)), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !reached {
		t.Fatal("100/100 must report the reached transition")
	}

	got, err := s.Get(g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ReachedAt != "2026-03-05" {
		t.Errorf("ReachedAt = %q, want the record's date", got.ReachedAt)
	}
	if got.Order <= other.Order {
		t.Error("a reached goal moves to the end of the manual ordering")
	}

	// Logging more on a completed goal never re-reports the transition.
	_, reached, err = s.AddRecord(g.ID, rec("2026-03-06", fp(10)), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if reached {
		t.Error("already-completed goals do not transition again")
	}
}

func TestStoreAddRecordInvalidDate(t *testing.T) {
	s := testStore(t)
	g := mustAdd(t, s, Goal{Name: "Read", StartDate: "2026-03-02"})
	if _, _, err := s.AddRecord(g.ID, rec("yesterday", nil), time.Now()); err == nil {
		t.Error("invalid record date must fail")
	}
}

func TestStoreDeleteRecordReopensGoal(t *testing.T) {
	s := testStore(t)
	g := mustAdd(t, s, Goal{
		Name:           "Savings",
		StartDate:      "2026-03-02",
		StartingNumber: fp(0),
		TargetNumber:   fp(100),
		Cumulative:     true,
	})
	if _, _, err := s.AddRecord(g.ID, rec("2026-03-02", fp(100)), time.Now()); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Get(g.ID)
	if !got.Completed() {
		t.Fatal("goal should be completed")
	}

	if err := s.DeleteRecord(g.ID, got.Records[0].ID); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Get(g.ID)
	if got.Completed() {
		t.Error("deleting the reaching record must clear completion")
	}
	if len(got.Records) != 0 {
		t.Errorf("%d records remain", len(got.Records))
	}
}

func TestStoreDeleteRecordKeepsCompletionWhenStillReached(t *testing.T) {
	s := testStore(t)
	g := mustAdd(t, s, Goal{
		Name:           "Savings",
		StartDate:      "2026-03-02",
		StartingNumber: fp(0),
		TargetNumber:   fp(100),
		Cumulative:     true,
	})
	if _, _, err := s.AddRecord(g.ID, rec("2026-03-02", fp(120)), time.Now()); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.AddRecord(g.ID, rec("2026-03-03", fp(30)), time.Now()); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Get(g.ID)
	var spare string
	for _, r := range got.Records {
		if r.Date == "2026-03-03" {
			spare = r.ID
		}
	}
	if err := s.DeleteRecord(g.ID, spare); err != nil {
		t.Fatal(err)
	}

	got, _ = s.Get(g.ID)
	if !got.Completed() {
		t.Error("120 still meets the target; completion must survive")
	}
}

func TestStoreDeleteRecordUnknown(t *testing.T) {
	s := testStore(t)
	g := mustAdd(t, s, Goal{Name: "Read", StartDate: "2026-03-02"})
	if err := s.DeleteRecord(g.ID, "nope"); err == nil {
		t.Error("unknown record ID must fail")
	}
}

func TestStoreDeleteCascades(t *testing.T) {
	s := testStore(t)
	g := mustAdd(t, s, Goal{Name: "Read", StartDate: "2026-03-02"})
	if _, _, err := s.AddRecord(g.ID, rec("2026-03-02", nil), time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(g.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(g.ID); err == nil {
		t.Error("deleted goal must be gone")
	}
	if err := s.Delete(g.ID); err == nil {
		t.Error("deleting twice must fail")
	}
}

func TestStoreSkipDates(t *testing.T) {
	s := testStore(t)
	g := mustAdd(t, s, Goal{Name: "Gym", StartDate: "2026-03-02", PlanEnabled: true, PlanInterval: IntervalWeekly})

	if err := s.AddSkipDate(g.ID, "2026-03-09"); err != nil {
		t.Fatal(err)
	}
	// Adding the same skip twice stays a single entry.
	if err := s.AddSkipDate(g.ID, "2026-03-09"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(g.ID)
	if len(got.PlanSkipDates) != 1 {
		t.Errorf("skip dates = %v", got.PlanSkipDates)
	}

	if err := s.AddSkipDate(g.ID, "next week"); err == nil {
		t.Error("invalid skip date must fail")
	}

	if err := s.RemoveSkipDate(g.ID, "2026-03-09"); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Get(g.ID)
	if len(got.PlanSkipDates) != 0 {
		t.Errorf("skip dates = %v after removal", got.PlanSkipDates)
	}
}

func TestStoreReplaceAll(t *testing.T) {
	s := testStore(t)
	mustAdd(t, s, Goal{Name: "Old", StartDate: "2026-01-01"})

	incoming := []Goal{
		{
			ID:        "fixed-id-1",
			Name:      "Imported",
			StartDate: "2026-03-02",
			Order:     0,
			Records:   []Record{{ID: "rec-1", Date: "2026-03-02", Value: fp(5)}},
		},
		{Name: "No ID yet", StartDate: "2026-03-02", Order: 1},
	}
	if err := s.ReplaceAll(incoming); err != nil {
		t.Fatal(err)
	}

	goals, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 2 {
		t.Fatalf("got %d goals after import", len(goals))
	}
	got, err := s.Get("fixed-id-1")
	if err != nil {
		t.Fatal("import must preserve incoming IDs")
	}
	if len(got.Records) != 1 || got.Records[0].ID != "rec-1" || *got.Records[0].Value != 5 {
		t.Errorf("records = %+v", got.Records)
	}
}

func TestStoreLegacyIconMigration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strive.db")
	db, err := store.OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}

	// Simulate a v1 row that only carries icon_value.
	if _, err := db.Conn().Exec(
		`INSERT INTO goals (id, name, start_date, icon_key, icon_value) VALUES (?, ?, ?, '', ?)`,
		"legacy-1", "Old goal", "2025-06-01", "trophy",
	); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = store.OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	g, err := NewStore(db.Conn()).Get("legacy-1")
	if err != nil {
		t.Fatal(err)
	}
	if g.IconKey != "trophy" {
		t.Errorf("IconKey = %q, want migrated legacy value", g.IconKey)
	}
}
