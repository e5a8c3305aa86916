package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/strivecli/strive/internal/dateutil"
	"github.com/strivecli/strive/internal/goal"
	"github.com/strivecli/strive/internal/tui"
	"github.com/strivecli/strive/internal/ui"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"cal", "plan"},
	Short:   "Planned goals on a monthly calendar",
	Long: `Browse planned goals on a monthly calendar. In a terminal this is
interactive: move around with h/j/k/l, toggle a day's log with space, skip an
occurrence with s. Piped or scripted, it prints the month instead.`,
	RunE: runCalendar,
}

var calendarSkipCmd = &cobra.Command{
	Use:   "skip <goal> [date]",
	Short: "Skip a planned occurrence (default: today)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCalendarSkip,
}

var calendarUnskipCmd = &cobra.Command{
	Use:   "unskip <goal> [date]",
	Short: "Restore a skipped occurrence",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCalendarUnskip,
}

var calendarMonth string

func init() {
	calendarCmd.AddCommand(calendarSkipCmd)
	calendarCmd.AddCommand(calendarUnskipCmd)
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month to show (YYYY-MM, default current)")
}

func parseMonthFlag(s string, now time.Time) (int, time.Month, error) {
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q — expected YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}

func runCalendar(_ *cobra.Command, _ []string) error {
	now := time.Now()
	year, month, err := parseMonthFlag(calendarMonth, now)
	if err != nil {
		return err
	}

	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	goals, err := s.List()
	if err != nil {
		return err
	}

	if !ui.IsInteractive() {
		printMonth(goals, year, month, dateutil.Today())
		return nil
	}

	actions, err := tui.RunCalendar(goals, year, month, dateutil.Today())
	if err != nil {
		return err
	}
	return applyCalendarActions(s, actions, now)
}

// applyCalendarActions commits the edits queued during an interactive
// session. A failed action stops the batch; earlier ones stay applied.
func applyCalendarActions(s *goal.Store, actions []tui.CalendarAction, now time.Time) error {
	for _, a := range actions {
		switch a.Type {
		case "log":
			if _, _, err := s.AddRecord(a.GoalID, goal.Record{Date: a.Date}, now); err != nil {
				return err
			}
		case "unlog":
			g, err := s.Get(a.GoalID)
			if err != nil {
				return err
			}
			for i := len(g.Records) - 1; i >= 0; i-- {
				if g.Records[i].Date == a.Date {
					if err := s.DeleteRecord(g.ID, g.Records[i].ID); err != nil {
						return err
					}
					break
				}
			}
		case "skip":
			if err := s.AddSkipDate(a.GoalID, a.Date); err != nil {
				return err
			}
		case "unskip":
			if err := s.RemoveSkipDate(a.GoalID, a.Date); err != nil {
				return err
			}
		}
	}
	if n := len(actions); n == 1 {
		ui.Ok("Saved 1 change")
	} else if n > 1 {
		ui.Ok(fmt.Sprintf("Saved %d changes", n))
	}
	return nil
}

// printMonth is the non-interactive rendering: one line per day that has
// planned goals, with a checkmark for logged ones.
func printMonth(goals []goal.Goal, year int, month time.Month, today string) {
	ui.Header(fmt.Sprintf("%s %d", month, year))

	days := dateutil.DaysInMonth(year, month)
	any := false
	for d := 1; d <= days; d++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, d)
		tasks := goal.ScheduledOn(goals, date)
		if len(tasks) == 0 {
			continue
		}
		any = true

		var parts []string
		for i := range tasks {
			g := &tasks[i]
			label := ui.GoalIcon(g.IconKey) + " " + g.DisplayName()
			if g.HasRecordOn(date) {
				label += " " + ui.Success.Render(ui.IconDone)
			}
			parts = append(parts, label)
		}

		prefix := "  "
		day := fmt.Sprintf("%2d %s", d, weekdayLabels[dateutil.WeekdayIndex(date)])
		if date == today {
			day = ui.Accent.Render(day + " ←")
		} else {
			day = ui.Muted.Render(day)
		}
		fmt.Printf("%s%s  %s\n", prefix, day, strings.Join(parts, "   "))
	}
	if !any {
		fmt.Println(ui.Muted.Render("  Nothing planned this month."))
		fmt.Printf("  Put a goal on the calendar: %s\n", ui.Accent.Render("strive goal edit <goal> --plan --days mon,wed,fri"))
	}
	fmt.Println()
}

func runCalendarSkip(_ *cobra.Command, args []string) error {
	return setSkip(args, true)
}

func runCalendarUnskip(_ *cobra.Command, args []string) error {
	return setSkip(args, false)
}

func setSkip(args []string, skip bool) error {
	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := s.Resolve(args[0])
	if err != nil {
		return err
	}

	date := dateutil.Today()
	if len(args) == 2 {
		date = args[1]
	}
	if !dateutil.IsValid(date) {
		return fmt.Errorf("invalid date %q — expected YYYY-MM-DD", date)
	}

	if skip {
		if err := s.AddSkipDate(g.ID, date); err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("Skipping %s on %s", g.Name, dateutil.FormatDisplay(date)))
		return nil
	}
	if err := s.RemoveSkipDate(g.ID, date); err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Restored %s on %s", g.Name, dateutil.FormatDisplay(date)))
	return nil
}
