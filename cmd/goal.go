package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/strivecli/strive/internal/dateutil"
	"github.com/strivecli/strive/internal/goal"
	"github.com/strivecli/strive/internal/ui"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Create and manage goals",
	RunE:  runGoalList,
}

var goalAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new goal",
	Long: `Add a goal. With no numeric flags it's a check-in goal: you log days, strive
counts streaks. Give it --start and --target to track a number instead.

  strive goal add "Meditate"
  strive goal add "Run a marathon" --target-date 2026-10-04
  strive goal add "Save €800" --start 0 --target 800 --unit € --sum
  strive goal add "Gym" --plan --every weekly --days mon,wed,fri`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGoalAdd,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	RunE:  runGoalList,
}

var goalShowCmd = &cobra.Command{
	Use:   "show <goal>",
	Short: "Display full goal detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalShow,
}

var (
	goalAddNote       string
	goalAddIcon       string
	goalAddColour     string
	goalAddStartDate  string
	goalAddTargetDate string
	goalAddStart      string
	goalAddTarget     string
	goalAddUnit       string
	goalAddSum        bool
	goalAddPlan       bool
	goalAddEvery      string
	goalAddDays       string
	goalAddCalName    string

	goalListAll bool
)

func init() {
	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalShowCmd)
	goalCmd.AddCommand(goalEditCmd)
	goalCmd.AddCommand(goalDoneCmd)
	goalCmd.AddCommand(goalRmCmd)
	goalCmd.AddCommand(goalMoveCmd)
	goalCmd.AddCommand(goalDuplicateCmd)

	f := goalAddCmd.Flags()
	f.StringVar(&goalAddNote, "note", "", "Free-form note (markdown)")
	f.StringVar(&goalAddIcon, "icon", "", "Icon key (e.g. Target, Flame, PiggyBank)")
	f.StringVar(&goalAddColour, "colour", "", "Progress colour (hex)")
	f.StringVar(&goalAddStartDate, "start-date", "", "Start date (YYYY-MM-DD, default today)")
	f.StringVar(&goalAddTargetDate, "target-date", "", "Target date (YYYY-MM-DD)")
	f.StringVar(&goalAddStart, "start", "", "Starting number")
	f.StringVar(&goalAddTarget, "target", "", "Target number")
	f.StringVar(&goalAddUnit, "unit", "", "Display unit (km, €, kg, ...)")
	f.BoolVar(&goalAddSum, "sum", false, "Cumulative: progress is the sum of logged values")
	f.BoolVar(&goalAddPlan, "plan", false, "Show this goal on the calendar")
	f.StringVar(&goalAddEvery, "every", "", "Plan interval: weekly, fortnightly, monthly")
	f.StringVar(&goalAddDays, "days", "", "Plan weekdays, comma separated (mon,tue,...)")
	f.StringVar(&goalAddCalName, "calendar-name", "", "Shorter label for the calendar")

	goalListCmd.Flags().BoolVar(&goalListAll, "all", false, "Include completed goals even when hidden")
	goalCmd.Flags().BoolVar(&goalListAll, "all", false, "Include completed goals even when hidden")
}

// parseOptionalNumber turns a flag value into an optional float. The empty
// string means absent, which is distinct from zero.
func parseOptionalNumber(s, flag string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q for --%s", s, flag)
	}
	return &v, nil
}

var weekdayNames = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thursday": 3,
	"fri": 4, "friday": 4,
	"sat": 5, "saturday": 5,
	"sun": 6, "sunday": 6,
}

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// parseWeekdays parses "mon,wed,fri" into weekday indices, deduplicated and
// in week order.
func parseWeekdays(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	seen := [7]bool{}
	for _, part := range strings.Split(s, ",") {
		d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			return nil, fmt.Errorf("invalid weekday %q — use mon..sun", strings.TrimSpace(part))
		}
		seen[d] = true
	}
	var days []int
	for d := 0; d < 7; d++ {
		if seen[d] {
			days = append(days, d)
		}
	}
	return days, nil
}

func formatWeekdays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < 7 {
			parts = append(parts, weekdayLabels[d])
		}
	}
	return strings.Join(parts, ", ")
}

func runGoalAdd(_ *cobra.Command, args []string) error {
	g := goal.Goal{
		Name:         strings.Join(args, " "),
		Note:         goalAddNote,
		IconKey:      goalAddIcon,
		Colour:       goalAddColour,
		StartDate:    goalAddStartDate,
		TargetDate:   goalAddTargetDate,
		Unit:         goalAddUnit,
		Cumulative:   goalAddSum,
		PlanEnabled:  goalAddPlan,
		CalendarName: goalAddCalName,
	}
	if g.StartDate == "" {
		g.StartDate = dateutil.Today()
	}

	var err error
	if g.StartingNumber, err = parseOptionalNumber(goalAddStart, "start"); err != nil {
		return err
	}
	if g.TargetNumber, err = parseOptionalNumber(goalAddTarget, "target"); err != nil {
		return err
	}
	if g.PlanInterval, err = goal.ParseInterval(goalAddEvery); err != nil {
		return err
	}
	if g.PlanDays, err = parseWeekdays(goalAddDays); err != nil {
		return err
	}
	// Interval or weekdays imply planning; no point configuring an invisible plan.
	if g.PlanInterval != goal.IntervalNone || len(g.PlanDays) > 0 {
		g.PlanEnabled = true
	}

	if err := goal.Validate(&g); err != nil {
		return err
	}

	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := s.Add(&g); err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("Added %s %s", ui.GoalIcon(g.IconKey), ui.Accent.Render(g.Name)))
	if g.IsCheckIn() {
		ui.Inf(fmt.Sprintf("Check-in goal — log days with %s", ui.Accent.Render("strive log "+shortRef(g.Name))))
	} else {
		ui.Inf(fmt.Sprintf("Log values with %s", ui.Accent.Render(fmt.Sprintf("strive log %s <value>", shortRef(g.Name)))))
	}
	return nil
}

// shortID abbreviates a UUID for display. Imported goals can carry IDs of
// any length, so short ones pass through whole.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// shortRef quotes a goal name for use in a hint when it contains spaces.
func shortRef(name string) string {
	if strings.ContainsAny(name, " \t") {
		return `"` + name + `"`
	}
	return name
}

func runGoalList(_ *cobra.Command, _ []string) error {
	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	goals, err := s.List()
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  No goals yet."))
		fmt.Printf("  Start with %s\n", ui.Accent.Render(`strive goal add "Read more"`))
		fmt.Println()
		return nil
	}

	hideCompleted := false
	if v, ok, err := db.GetKV("hideCompleted"); err == nil && ok {
		hideCompleted = v == "true"
	}

	now := time.Now()
	ui.Header("Goals")
	for i := range goals {
		g := &goals[i]
		if g.Completed() && hideCompleted && !goalListAll {
			continue
		}
		printGoalRow(g, now)
	}
	fmt.Println()
	return nil
}

func printGoalRow(g *goal.Goal, now time.Time) {
	icon := ui.GoalIcon(g.IconKey)
	name := g.Name
	if g.Completed() {
		name = ui.Muted.Render(name + "  " + ui.IconDone)
	} else {
		name = ui.ValueStyle.Render(name)
	}

	id := ui.Muted.Render(shortID(g.ID))
	line := fmt.Sprintf("  %s %s %s", id, icon, name)

	p := goal.ComputeProgress(g)
	switch {
	case g.Completed():
		// no trailing detail; the checkmark says it all
	case g.HasTarget():
		bar := ui.Bar(p.Fraction, 12, ui.GoalColour(g.Colour))
		line += fmt.Sprintf("  %s %s", bar, ui.Muted.Render(ui.Percent(p.Fraction)))
	default:
		if streak := goal.ComputeStreak(g.Records, now); streak > 0 {
			line += "  " + ui.Warning.Render(fmt.Sprintf("%s %d", ui.IconStreak, streak))
		} else if p.RecordCount > 0 {
			line += "  " + ui.Muted.Render(fmt.Sprintf("%d logs", p.RecordCount))
		}
	}
	fmt.Println(line)
}

func runGoalShow(_ *cobra.Command, args []string) error {
	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := s.Resolve(args[0])
	if err != nil {
		return err
	}
	printGoalDetail(g, time.Now())
	return nil
}

// printGoalDetail renders a full detail card for a single goal.
func printGoalDetail(g *goal.Goal, now time.Time) {
	fmt.Println()
	fmt.Printf("  %s %s %s\n", ui.Muted.Render(shortID(g.ID)), ui.GoalIcon(g.IconKey), ui.Accent.Render(g.Name))
	fmt.Println()

	ui.Kv("Started", dateutil.FormatDisplay(g.StartDate))
	if g.TargetDate != "" {
		ui.Kv("Target date", dateutil.FormatDisplay(g.TargetDate))
	}
	if g.Completed() {
		ui.Kv("Reached", ui.Success.Render(dateutil.FormatDisplay(g.ReachedAt)))
	}

	p := goal.ComputeProgress(g)
	if g.HasTarget() {
		bar := ui.Bar(p.Fraction, 24, ui.GoalColour(g.Colour))
		ui.Kv("Progress", fmt.Sprintf("%s %s", bar, ui.Percent(p.Fraction)))
		arrow := "↑"
		if p.Direction == goal.Decrease {
			arrow = "↓"
		}
		ui.Kv("Current", fmt.Sprintf("%s %s", formatAmount(p.Current, g.Unit), ui.Muted.Render(arrow)))
		ui.Kv("Target", formatAmount(p.Target, g.Unit))
		if rem := goal.Remaining(g); rem != nil && !p.Reached {
			ui.Kv("To go", formatAmount(rem, g.Unit))
		}
	} else if p.Current != nil {
		ui.Kv("Latest", formatAmount(p.Current, g.Unit))
	}

	if streak := goal.ComputeStreak(g.Records, now); streak > 0 {
		ui.Kv("Streak", fmt.Sprintf("%s %d days", ui.IconStreak, streak))
	}
	ui.Kv("Logs", strconv.Itoa(len(g.Records)))

	if g.PlanEnabled {
		plan := "on the calendar"
		switch g.PlanInterval {
		case goal.IntervalWeekly:
			plan = "weekly"
		case goal.IntervalFortnightly:
			plan = "fortnightly"
		case goal.IntervalMonthly:
			plan = "monthly"
		}
		if days := formatWeekdays(g.PlanDays); days != "" {
			plan += " on " + days
		}
		ui.Kv("Plan", plan)
	}

	if note := ui.RenderNote(g.Note); note != "" {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  Note:"))
		for _, line := range strings.Split(note, "\n") {
			fmt.Println("  " + line)
		}
	}
	fmt.Println()
}

// formatAmount renders an optional value with the goal's unit.
func formatAmount(v *float64, unit string) string {
	if v == nil {
		return ui.Muted.Render("—")
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	if unit != "" {
		s += " " + unit
	}
	return s
}
