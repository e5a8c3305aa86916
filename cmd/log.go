package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/strivecli/strive/internal/dateutil"
	"github.com/strivecli/strive/internal/goal"
	"github.com/strivecli/strive/internal/ui"
)

var logCmd = &cobra.Command{
	Use:   "log <goal> [value]",
	Short: "Log progress on a goal",
	Long: `Log a day's progress. Check-in goals take no value; numeric goals take one:

  strive log meditate
  strive log savings 120
  strive log weight 81.4 --date 2026-08-28`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLog,
}

var logRmCmd = &cobra.Command{
	Use:     "rm <goal> [date]",
	Aliases: []string{"undo"},
	Short:   "Remove a log entry (default: today's)",
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runLogRm,
}

var logListCmd = &cobra.Command{
	Use:   "list <goal>",
	Short: "Show a goal's log history",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogList,
}

var (
	logDate  string
	logNote  string
	logLimit int
)

func init() {
	logCmd.AddCommand(logRmCmd)
	logCmd.AddCommand(logListCmd)

	logCmd.Flags().StringVar(&logDate, "date", "", "Log date (YYYY-MM-DD, default today)")
	logCmd.Flags().StringVar(&logNote, "note", "", "Note attached to this entry")
	logListCmd.Flags().IntVarP(&logLimit, "limit", "n", 15, "Entries to show (0 = all)")
}

func runLog(_ *cobra.Command, args []string) error {
	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := s.Resolve(args[0])
	if err != nil {
		return err
	}

	rec := goal.Record{Date: dateutil.Today(), Note: logNote}
	if logDate != "" {
		rec.Date = logDate
	}
	if len(args) == 2 {
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q", args[1])
		}
		rec.Value = &v
	}

	now := time.Now()
	celebration, reachedNow, err := s.AddRecord(g.ID, rec, now)
	if err != nil {
		return err
	}

	what := "Logged " + dateutil.FormatDisplay(rec.Date)
	if rec.Value != nil {
		what = fmt.Sprintf("Logged %s on %s", formatAmount(rec.Value, g.Unit), dateutil.FormatDisplay(rec.Date))
	}
	ui.Ok(fmt.Sprintf("%s for %s", what, ui.Accent.Render(g.Name)))

	// Reached takes the banner; a milestone shows alongside if both fire.
	if reachedNow {
		fmt.Println()
		fmt.Println("  " + ui.Celebrate.Render(fmt.Sprintf("%s Goal reached: %s", ui.IconParty, g.Name)))
		fmt.Println()
	}
	if celebration != nil && !reachedNow {
		fmt.Println()
		fmt.Println("  " + ui.Celebrate.Render(ui.IconTrophy+" "+celebration.Title))
		fmt.Println("  " + ui.Muted.Render(celebration.Message))
		fmt.Println()
	}

	if g, err := s.Get(g.ID); err == nil {
		if streak := goal.ComputeStreak(g.Records, now); streak > 1 && !streakJustCelebrated(celebration) {
			ui.Inf(fmt.Sprintf("%s %d day streak", ui.IconStreak, streak))
		}
	}
	return nil
}

func streakJustCelebrated(c *goal.Celebration) bool {
	return c != nil && len(c.Title) >= 6 && c.Title[:6] == "Streak"
}

func runLogRm(_ *cobra.Command, args []string) error {
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

	// Latest entry on that day; multiple same-day logs come off newest-first.
	var target *goal.Record
	for i := len(g.Records) - 1; i >= 0; i-- {
		if g.Records[i].Date == date {
			target = &g.Records[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no log on %s for %q", date, g.Name)
	}

	if err := s.DeleteRecord(g.ID, target.ID); err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Removed log on %s for %s", dateutil.FormatDisplay(date), g.Name))
	return nil
}

func runLogList(_ *cobra.Command, args []string) error {
	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := s.Resolve(args[0])
	if err != nil {
		return err
	}
	if len(g.Records) == 0 {
		ui.Inf(fmt.Sprintf("No logs yet for %q", g.Name))
		return nil
	}

	ui.Header(fmt.Sprintf("%s %s — %d logs", ui.GoalIcon(g.IconKey), g.Name, len(g.Records)))

	// Newest first.
	shown := 0
	for i := len(g.Records) - 1; i >= 0; i-- {
		if logLimit > 0 && shown >= logLimit {
			fmt.Println(ui.Muted.Render(fmt.Sprintf("  … %d more", i+1)))
			break
		}
		r := g.Records[i]
		line := "  " + ui.ValueStyle.Render(dateutil.FormatDisplay(r.Date))
		if r.Value != nil {
			line += "  " + formatAmount(r.Value, g.Unit)
		}
		if r.Note != "" {
			line += "  " + ui.Muted.Render(r.Note)
		}
		fmt.Println(line)
		shown++
	}
	fmt.Println()
	return nil
}
