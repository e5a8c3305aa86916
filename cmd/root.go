package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/strivecli/strive/internal/config"
	"github.com/strivecli/strive/internal/dateutil"
	"github.com/strivecli/strive/internal/goal"
	"github.com/strivecli/strive/internal/store"
	"github.com/strivecli/strive/internal/ui"
	"github.com/strivecli/strive/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "strive",
	Short: "Track your goals from the terminal",
	Long:  `strive — personal goal tracking: progress, streaks, and a plan you'll actually follow.`,
	RunE:  runDashboard,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if cfg, err := config.Load(); err == nil {
			ui.ApplyTheme(cfg.Display.Theme)
		}
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore opens the database and wraps it in a goal store. Callers close db.
func openStore() (*store.DB, *goal.Store, error) {
	db, err := store.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return db, goal.NewStore(db.Conn()), nil
}

// runDashboard shows the at-a-glance status when you just type `strive`.
func runDashboard(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !config.Initialized() {
		fmt.Println(ui.Greet(""))
		fmt.Println()
		fmt.Println("  Looks like this is your first time. Let's set things up!")
		fmt.Println()
		fmt.Printf("  Run %s to get started.\n", ui.Accent.Render("strive init"))
		fmt.Println()
		return nil
	}

	fmt.Println(ui.Greet(cfg.User.Name))
	fmt.Println()

	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	goals, err := s.List()
	if err != nil {
		return fmt.Errorf("listing goals: %w", err)
	}

	today := dateutil.Today()
	now := time.Now()

	active, completed := 0, 0
	dueToday, loggedToday := 0, 0
	bestStreak, bestStreakName := 0, ""
	for i := range goals {
		g := &goals[i]
		if g.Completed() {
			completed++
			continue
		}
		active++
		if goal.IsScheduled(g, today) {
			dueToday++
			if g.HasRecordOn(today) {
				loggedToday++
			}
		}
		if streak := goal.ComputeStreak(g.Records, now); streak > bestStreak {
			bestStreak, bestStreakName = streak, g.Name
		}
	}

	summary := fmt.Sprintf("%d active", active)
	if completed > 0 {
		summary += fmt.Sprintf(" / %d completed", completed)
	}
	ui.Kv(ui.IconGoal+" Goals", summary)

	if dueToday > 0 {
		planLine := fmt.Sprintf("%d/%d done", loggedToday, dueToday)
		if loggedToday == dueToday {
			planLine = ui.Success.Render(planLine + " " + ui.IconDone)
		}
		ui.Kv(ui.IconCalendar+" Today", planLine)
	}
	if bestStreak > 0 {
		ui.Kv(ui.IconStreak+" Streak", fmt.Sprintf("%d days (%s)", bestStreak, bestStreakName))
	}
	ui.Kv("📆 Date", now.Format("Monday, January 2"))
	ui.Kv("⚙️ Strive", version.Short())

	switch {
	case len(goals) == 0:
		ui.Tip("`strive goal add \"Read more\"` to set your first goal.")
	case dueToday > loggedToday:
		ui.Tip("`strive calendar` to knock out today's plan.")
	default:
		ui.Tip("`strive progress` to see how far you've come.")
	}

	fmt.Println()
	return nil
}
