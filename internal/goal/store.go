package goal

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/strivecli/strive/internal/dateutil"
)

// Store handles goal persistence.
type Store struct {
	db *sql.DB
}

// NewStore creates a new goal store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const goalColumns = `id, name, note, icon_key, colour, start_date, target_date,
	starting_number, target_number, unit, cumulative, reached_at, sort_order,
	plan_enabled, plan_interval, plan_days, calendar_name, plan_skip_dates`

// Add persists a new goal. A missing ID is assigned, and the goal is placed
// at the end of the manual ordering.
func (s *Store) Add(g *Goal) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	maxOrder, err := s.maxOrder()
	if err != nil {
		return fmt.Errorf("adding goal: %w", err)
	}
	g.Order = maxOrder + 1

	_, err = s.db.Exec(
		`INSERT INTO goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Note, g.IconKey, g.Colour, g.StartDate, nullString(g.TargetDate),
		nullFloat(g.StartingNumber), nullFloat(g.TargetNumber), g.Unit, boolInt(g.Cumulative),
		nullString(g.ReachedAt), g.Order, boolInt(g.PlanEnabled), g.PlanInterval,
		encodeDays(g.PlanDays), g.CalendarName, strings.Join(g.PlanSkipDates, ","),
	)
	if err != nil {
		return fmt.Errorf("adding goal: %w", err)
	}
	return nil
}

// Get returns a single goal by ID, records included and sorted by date.
func (s *Store) Get(id string) (*Goal, error) {
	row := s.db.QueryRow(`SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	g, err := scanGoalRow(row)
	if err != nil {
		return nil, fmt.Errorf("getting goal %s: %w", id, err)
	}
	if g == nil {
		return nil, fmt.Errorf("goal %s not found", id)
	}
	if err := s.loadRecords(g); err != nil {
		return nil, fmt.Errorf("loading records for goal %s: %w", id, err)
	}
	return g, nil
}

// List returns all goals with records, active goals first (by manual order),
// completed goals after.
func (s *Store) List() ([]Goal, error) {
	rows, err := s.db.Query(
		`SELECT ` + goalColumns + ` FROM goals
		 ORDER BY CASE WHEN reached_at IS NULL OR reached_at = '' THEN 0 ELSE 1 END, sort_order ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals, err := scanGoalRows(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*Goal, len(goals))
	for i := range goals {
		byID[goals[i].ID] = &goals[i]
	}

	recRows, err := s.db.Query(`SELECT id, goal_id, date, value, note FROM records ORDER BY date ASC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer recRows.Close()

	for recRows.Next() {
		var r Record
		var goalID string
		var value sql.NullFloat64
		if err := recRows.Scan(&r.ID, &goalID, &r.Date, &value, &r.Note); err != nil {
			return nil, err
		}
		if value.Valid {
			v := value.Float64
			r.Value = &v
		}
		if g, ok := byID[goalID]; ok {
			g.Records = append(g.Records, r)
		}
	}
	if err := recRows.Err(); err != nil {
		return nil, err
	}

	return goals, nil
}

// Resolve finds a goal by exact ID, unambiguous ID prefix, or
// case-insensitive name.
func (s *Store) Resolve(ref string) (*Goal, error) {
	goals, err := s.List()
	if err != nil {
		return nil, err
	}

	ref = strings.TrimSpace(ref)
	var matches []*Goal
	for i := range goals {
		g := &goals[i]
		if g.ID == ref {
			return g, nil
		}
		if strings.HasPrefix(g.ID, ref) || strings.EqualFold(g.Name, ref) {
			matches = append(matches, g)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no goal matches %q", ref)
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return nil, fmt.Errorf("%q is ambiguous — matches %s", ref, strings.Join(names, ", "))
	}
}

// Update rewrites a goal's configuration fields. Records are untouched;
// ReachedAt is written as given, so callers decide whether an edit re-opens
// the goal.
func (s *Store) Update(g *Goal) error {
	res, err := s.db.Exec(
		`UPDATE goals SET name = ?, note = ?, icon_key = ?, colour = ?, start_date = ?,
			target_date = ?, starting_number = ?, target_number = ?, unit = ?, cumulative = ?,
			reached_at = ?, plan_enabled = ?, plan_interval = ?, plan_days = ?,
			calendar_name = ?, plan_skip_dates = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		g.Name, g.Note, g.IconKey, g.Colour, g.StartDate,
		nullString(g.TargetDate), nullFloat(g.StartingNumber), nullFloat(g.TargetNumber),
		g.Unit, boolInt(g.Cumulative), nullString(g.ReachedAt), boolInt(g.PlanEnabled),
		g.PlanInterval, encodeDays(g.PlanDays), g.CalendarName, strings.Join(g.PlanSkipDates, ","),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("goal %s not found", g.ID)
	}
	return nil
}

// Delete removes a goal and, via the FK cascade, its records. Irreversible.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("goal %s not found", id)
	}
	return nil
}

// Move swaps a goal's manual order with its neighbor in the displayed list.
// dir is -1 (up) or +1 (down). Moving past either end is a no-op.
func (s *Store) Move(id string, dir int) error {
	goals, err := s.List()
	if err != nil {
		return err
	}

	idx := -1
	for i := range goals {
		if goals[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("goal %s not found", id)
	}
	j := idx + dir
	if j < 0 || j >= len(goals) {
		return nil
	}

	a, b := &goals[idx], &goals[j]
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE goals SET sort_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, b.Order, a.ID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`UPDATE goals SET sort_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, a.Order, b.ID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Duplicate clones a goal's configuration under a new name, with fresh
// records and no completion state. Returns the new goal.
func (s *Store) Duplicate(id string, newName string) (*Goal, error) {
	src, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	clone := *src
	clone.ID = uuid.NewString()
	clone.Records = nil
	clone.ReachedAt = ""
	if n := strings.TrimSpace(newName); n != "" {
		clone.Name = n
	}
	if err := s.Add(&clone); err != nil {
		return nil, fmt.Errorf("duplicating goal: %w", err)
	}
	return &clone, nil
}

// MarkComplete marks a goal as reached today and pushes it to the end of the
// manual ordering. Already-completed goals are left as-is.
func (s *Store) MarkComplete(id string) error {
	g, err := s.Get(id)
	if err != nil {
		return err
	}
	if g.Completed() {
		return nil
	}
	maxOrder, err := s.maxOrder()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`UPDATE goals SET reached_at = ?, sort_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		dateutil.Today(), maxOrder+1, id,
	)
	if err != nil {
		return fmt.Errorf("completing goal: %w", err)
	}
	return nil
}

// AddRecord logs a record against a goal and evaluates the resulting
// transitions: at most one celebration (streak > log count > comeback), and
// the target-reached transition, which stamps ReachedAt with the record's
// date and pushes the goal to the end of the list. reachedNow is true only on
// the transition itself, never for already-completed goals.
func (s *Store) AddRecord(goalID string, rec Record, now time.Time) (c *Celebration, reachedNow bool, err error) {
	before, err := s.Get(goalID)
	if err != nil {
		return nil, false, err
	}
	if !dateutil.IsValid(rec.Date) {
		return nil, false, fmt.Errorf("invalid record date %q — use YYYY-MM-DD", rec.Date)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	after := *before
	after.Records = append(append([]Record(nil), before.Records...), rec)

	c = EvaluateCelebration(before, &after, rec.Date, now)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, err
	}
	if _, err := tx.Exec(
		`INSERT INTO records (id, goal_id, date, value, note) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, goalID, rec.Date, nullFloat(rec.Value), rec.Note,
	); err != nil {
		tx.Rollback()
		return nil, false, fmt.Errorf("adding record: %w", err)
	}

	progress := ComputeProgress(&after)
	if after.HasTarget() && progress.Reached && !before.Completed() {
		maxOrder, err := maxOrderTx(tx)
		if err != nil {
			tx.Rollback()
			return nil, false, err
		}
		if _, err := tx.Exec(
			`UPDATE goals SET reached_at = ?, sort_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			rec.Date, maxOrder+1, goalID,
		); err != nil {
			tx.Rollback()
			return nil, false, fmt.Errorf("marking goal reached: %w", err)
		}
		reachedNow = true
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return c, reachedNow, nil
}

// DeleteRecord removes a record and re-evaluates completion: ReachedAt is
// cleared unless the target is still independently satisfied by the
// remaining records. The starting number is never touched.
func (s *Store) DeleteRecord(goalID, recordID string) error {
	g, err := s.Get(goalID)
	if err != nil {
		return err
	}

	kept := make([]Record, 0, len(g.Records))
	found := false
	for _, r := range g.Records {
		if r.ID == recordID {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return fmt.Errorf("record %s not found on goal %q", recordID, g.Name)
	}

	after := *g
	after.Records = kept
	stillReached := len(kept) > 0 && after.HasTarget() && ComputeProgress(&after).Reached

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM records WHERE id = ? AND goal_id = ?`, recordID, goalID); err != nil {
		tx.Rollback()
		return fmt.Errorf("deleting record: %w", err)
	}
	if g.Completed() && !stillReached {
		if _, err := tx.Exec(
			`UPDATE goals SET reached_at = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			goalID,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("re-opening goal: %w", err)
		}
	}
	return tx.Commit()
}

// AddSkipDate excludes a date from a goal's recurring schedule.
func (s *Store) AddSkipDate(goalID, dateOnly string) error {
	if !dateutil.IsValid(dateOnly) {
		return fmt.Errorf("invalid date %q — use YYYY-MM-DD", dateOnly)
	}
	g, err := s.Get(goalID)
	if err != nil {
		return err
	}
	if g.SkipsDate(dateOnly) {
		return nil
	}
	g.PlanSkipDates = append(g.PlanSkipDates, dateOnly)
	return s.Update(g)
}

// RemoveSkipDate restores a previously skipped date.
func (s *Store) RemoveSkipDate(goalID, dateOnly string) error {
	g, err := s.Get(goalID)
	if err != nil {
		return err
	}
	kept := g.PlanSkipDates[:0]
	for _, d := range g.PlanSkipDates {
		if d != dateOnly {
			kept = append(kept, d)
		}
	}
	g.PlanSkipDates = kept
	return s.Update(g)
}

// ReplaceAll wholesale-replaces the goal collection, records included. Used
// by import; IDs are preserved.
func (s *Store) ReplaceAll(goals []Goal) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clearing records: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM goals`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clearing goals: %w", err)
	}

	for i := range goals {
		g := &goals[i]
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		if _, err := tx.Exec(
			`INSERT INTO goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.Name, g.Note, g.IconKey, g.Colour, g.StartDate, nullString(g.TargetDate),
			nullFloat(g.StartingNumber), nullFloat(g.TargetNumber), g.Unit, boolInt(g.Cumulative),
			nullString(g.ReachedAt), g.Order, boolInt(g.PlanEnabled), g.PlanInterval,
			encodeDays(g.PlanDays), g.CalendarName, strings.Join(g.PlanSkipDates, ","),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("importing goal %q: %w", g.Name, err)
		}
		for _, r := range g.Records {
			if r.ID == "" {
				r.ID = uuid.NewString()
			}
			if _, err := tx.Exec(
				`INSERT INTO records (id, goal_id, date, value, note) VALUES (?, ?, ?, ?, ?)`,
				r.ID, g.ID, r.Date, nullFloat(r.Value), r.Note,
			); err != nil {
				tx.Rollback()
				return fmt.Errorf("importing records for %q: %w", g.Name, err)
			}
		}
	}
	return tx.Commit()
}

// loadRecords populates a goal's records sorted by date.
func (s *Store) loadRecords(g *Goal) error {
	rows, err := s.db.Query(
		`SELECT id, date, value, note FROM records WHERE goal_id = ? ORDER BY date ASC, created_at ASC`,
		g.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r Record
		var value sql.NullFloat64
		if err := rows.Scan(&r.ID, &r.Date, &value, &r.Note); err != nil {
			return err
		}
		if value.Valid {
			v := value.Float64
			r.Value = &v
		}
		g.Records = append(g.Records, r)
	}
	return rows.Err()
}

// maxOrder returns the highest sort_order across all goals, or -1 when none
// exist.
func (s *Store) maxOrder() (int, error) {
	var max sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(sort_order) FROM goals`).Scan(&max); err != nil {
		return 0, err
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

func maxOrderTx(tx *sql.Tx) (int, error) {
	var max sql.NullInt64
	if err := tx.QueryRow(`SELECT MAX(sort_order) FROM goals`).Scan(&max); err != nil {
		return 0, err
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

// scanGoalRow scans a single goal from a sql.Row.
func scanGoalRow(row *sql.Row) (*Goal, error) {
	var g Goal
	var targetDate, reachedAt sql.NullString
	var startingNumber, targetNumber sql.NullFloat64
	var cumulativeInt, planEnabledInt int
	var planDays, skipDates string

	err := row.Scan(
		&g.ID, &g.Name, &g.Note, &g.IconKey, &g.Colour, &g.StartDate, &targetDate,
		&startingNumber, &targetNumber, &g.Unit, &cumulativeInt, &reachedAt, &g.Order,
		&planEnabledInt, &g.PlanInterval, &planDays, &g.CalendarName, &skipDates,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	applyScanned(&g, targetDate, reachedAt, startingNumber, targetNumber, cumulativeInt, planEnabledInt, planDays, skipDates)
	return &g, nil
}

// scanGoalRows scans sql.Rows into a slice of Goal.
func scanGoalRows(rows *sql.Rows) ([]Goal, error) {
	var goals []Goal
	for rows.Next() {
		var g Goal
		var targetDate, reachedAt sql.NullString
		var startingNumber, targetNumber sql.NullFloat64
		var cumulativeInt, planEnabledInt int
		var planDays, skipDates string

		if err := rows.Scan(
			&g.ID, &g.Name, &g.Note, &g.IconKey, &g.Colour, &g.StartDate, &targetDate,
			&startingNumber, &targetNumber, &g.Unit, &cumulativeInt, &reachedAt, &g.Order,
			&planEnabledInt, &g.PlanInterval, &planDays, &g.CalendarName, &skipDates,
		); err != nil {
			return nil, err
		}
		applyScanned(&g, targetDate, reachedAt, startingNumber, targetNumber, cumulativeInt, planEnabledInt, planDays, skipDates)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func applyScanned(g *Goal, targetDate, reachedAt sql.NullString, startingNumber, targetNumber sql.NullFloat64, cumulativeInt, planEnabledInt int, planDays, skipDates string) {
	if targetDate.Valid {
		g.TargetDate = targetDate.String
	}
	if reachedAt.Valid {
		g.ReachedAt = reachedAt.String
	}
	if startingNumber.Valid {
		v := startingNumber.Float64
		g.StartingNumber = &v
	}
	if targetNumber.Valid {
		v := targetNumber.Float64
		g.TargetNumber = &v
	}
	g.Cumulative = cumulativeInt == 1
	g.PlanEnabled = planEnabledInt == 1
	g.PlanDays = decodeDays(planDays)
	if skipDates != "" {
		g.PlanSkipDates = strings.Split(skipDates, ",")
	}
}

// encodeDays serializes weekday indices as a comma list, e.g. "0,2,4".
func encodeDays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func decodeDays(s string) []int {
	if s == "" {
		return nil
	}
	var days []int
	for _, part := range strings.Split(s, ",") {
		if d, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			days = append(days, d)
		}
	}
	return days
}

// nullString maps "" to NULL for optional date columns.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullFloat maps nil to NULL for optional numeric columns.
func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// boolInt maps a bool to the 0/1 SQLite convention.
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
