package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/strivecli/strive/internal/dateutil"
	"github.com/strivecli/strive/internal/goal"
	"github.com/strivecli/strive/internal/ui"
)

var progressCmd = &cobra.Command{
	Use:   "progress [goal]",
	Short: "Progress overview across all goals",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProgress,
}

func runProgress(_ *cobra.Command, args []string) error {
	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 1 {
		g, err := s.Resolve(args[0])
		if err != nil {
			return err
		}
		printGoalDetail(g, time.Now())
		return nil
	}

	goals, err := s.List()
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		ui.Inf("No goals yet — add one with: strive goal add <name>")
		return nil
	}

	now := time.Now()
	ui.Header("Progress")
	for i := range goals {
		printProgressRow(&goals[i], now)
	}
	fmt.Println()
	return nil
}

func printProgressRow(g *goal.Goal, now time.Time) {
	icon := ui.GoalIcon(g.IconKey)
	p := goal.ComputeProgress(g)

	if g.Completed() {
		fmt.Printf("  %s %s %s\n", icon, ui.Muted.Render(g.Name),
			ui.Success.Render(ui.IconDone+" reached "+dateutil.FormatDisplay(g.ReachedAt)))
		return
	}

	name := ui.ValueStyle.Render(g.Name)
	switch {
	case g.HasTarget() && p.Current == nil && p.Start == nil:
		fmt.Printf("  %s %s  %s\n", icon, name, ui.Muted.Render("no data yet"))
	case g.HasTarget():
		bar := ui.Bar(p.Fraction, 20, ui.GoalColour(g.Colour))
		detail := fmt.Sprintf("%s of %s", formatAmount(p.Current, g.Unit), formatAmount(p.Target, g.Unit))
		fmt.Printf("  %s %s\n      %s %s  %s\n", icon, name, bar, ui.Percent(p.Fraction), ui.Muted.Render(detail))
	default:
		streak := goal.ComputeStreak(g.Records, now)
		detail := fmt.Sprintf("%d logs", p.RecordCount)
		if streak > 0 {
			detail = fmt.Sprintf("%s %d day streak · %s", ui.IconStreak, streak, detail)
		}
		fmt.Printf("  %s %s  %s\n", icon, name, ui.Muted.Render(detail))
	}
}
