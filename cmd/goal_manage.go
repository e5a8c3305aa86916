package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/strivecli/strive/internal/goal"
	"github.com/strivecli/strive/internal/ui"
)

var goalEditCmd = &cobra.Command{
	Use:   "edit <goal>",
	Short: "Edit a goal's fields",
	Long: `Edit a goal. Only the flags you pass are changed; everything else is left
alone. Pass an empty string to clear an optional field:

  strive goal edit savings --target 1000
  strive goal edit gym --days mon,wed,fri
  strive goal edit weight --target-date ""`,
	Args: cobra.ExactArgs(1),
	RunE: runGoalEdit,
}

var goalDoneCmd = &cobra.Command{
	Use:   "done <goal>",
	Short: "Mark a goal as reached",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalDone,
}

var goalRmCmd = &cobra.Command{
	Use:     "rm <goal>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a goal and its logs",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalRm,
}

var goalMoveCmd = &cobra.Command{
	Use:   "move <goal> <up|down>",
	Short: "Reorder a goal in the list",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalMove,
}

var goalDuplicateCmd = &cobra.Command{
	Use:     "duplicate <goal> [new name]",
	Aliases: []string{"dup"},
	Short:   "Copy a goal without its logs",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runGoalDuplicate,
}

var (
	goalEditName       string
	goalEditNote       string
	goalEditIcon       string
	goalEditColour     string
	goalEditStartDate  string
	goalEditTargetDate string
	goalEditStart      string
	goalEditTarget     string
	goalEditUnit       string
	goalEditSum        bool
	goalEditPlan       bool
	goalEditEvery      string
	goalEditDays       string
	goalEditCalName    string

	goalRmForce bool
)

func init() {
	f := goalEditCmd.Flags()
	f.StringVar(&goalEditName, "name", "", "Rename the goal")
	f.StringVar(&goalEditNote, "note", "", "Replace the note")
	f.StringVar(&goalEditIcon, "icon", "", "Icon key")
	f.StringVar(&goalEditColour, "colour", "", "Progress colour (hex)")
	f.StringVar(&goalEditStartDate, "start-date", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&goalEditTargetDate, "target-date", "", "Target date (YYYY-MM-DD)")
	f.StringVar(&goalEditStart, "start", "", "Starting number")
	f.StringVar(&goalEditTarget, "target", "", "Target number")
	f.StringVar(&goalEditUnit, "unit", "", "Display unit")
	f.BoolVar(&goalEditSum, "sum", false, "Cumulative: progress is the sum of logged values")
	f.BoolVar(&goalEditPlan, "plan", false, "Show this goal on the calendar")
	f.StringVar(&goalEditEvery, "every", "", "Plan interval: weekly, fortnightly, monthly, none")
	f.StringVar(&goalEditDays, "days", "", "Plan weekdays, comma separated")
	f.StringVar(&goalEditCalName, "calendar-name", "", "Shorter label for the calendar")

	goalRmCmd.Flags().BoolVarP(&goalRmForce, "force", "f", false, "Skip the confirmation prompt")
}

// applyString overwrites dst only when the flag was passed, so an explicit
// empty string clears the field while an omitted flag leaves it alone.
func applyString(f *pflag.FlagSet, name string, dst *string, val string) {
	if f.Changed(name) {
		*dst = val
	}
}

func runGoalEdit(cmd *cobra.Command, args []string) error {
	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := s.Resolve(args[0])
	if err != nil {
		return err
	}

	f := cmd.Flags()
	applyString(f, "name", &g.Name, goalEditName)
	applyString(f, "note", &g.Note, goalEditNote)
	applyString(f, "icon", &g.IconKey, goalEditIcon)
	applyString(f, "colour", &g.Colour, goalEditColour)
	applyString(f, "start-date", &g.StartDate, goalEditStartDate)
	applyString(f, "target-date", &g.TargetDate, goalEditTargetDate)
	if f.Changed("start") {
		if g.StartingNumber, err = parseOptionalNumber(goalEditStart, "start"); err != nil {
			return err
		}
	}
	if f.Changed("target") {
		if g.TargetNumber, err = parseOptionalNumber(goalEditTarget, "target"); err != nil {
			return err
		}
	}
	applyString(f, "unit", &g.Unit, goalEditUnit)
	if f.Changed("sum") {
		g.Cumulative = goalEditSum
	}
	if f.Changed("plan") {
		g.PlanEnabled = goalEditPlan
	}
	if f.Changed("every") {
		if g.PlanInterval, err = goal.ParseInterval(goalEditEvery); err != nil {
			return err
		}
	}
	if f.Changed("days") {
		if g.PlanDays, err = parseWeekdays(goalEditDays); err != nil {
			return err
		}
	}
	applyString(f, "calendar-name", &g.CalendarName, goalEditCalName)

	if err := goal.Validate(g); err != nil {
		return err
	}
	if err := s.Update(g); err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Updated %s", ui.Accent.Render(g.Name)))
	return nil
}

func runGoalDone(_ *cobra.Command, args []string) error {
	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := s.Resolve(args[0])
	if err != nil {
		return err
	}
	if g.Completed() {
		ui.Inf(fmt.Sprintf("%s is already marked as reached", g.Name))
		return nil
	}
	if err := s.MarkComplete(g.ID); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("  " + ui.Celebrate.Render(fmt.Sprintf("%s Goal reached: %s", ui.IconParty, g.Name)))
	fmt.Println()
	return nil
}

func runGoalRm(_ *cobra.Command, args []string) error {
	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := s.Resolve(args[0])
	if err != nil {
		return err
	}

	if !goalRmForce {
		n := len(g.Records)
		fmt.Printf("Delete %s and its %d logs? [y/N] ", ui.Accent.Render(g.Name), n)
		if !confirm() {
			ui.Inf("Nothing deleted")
			return nil
		}
	}
	if err := s.Delete(g.ID); err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Deleted %s", g.Name))
	return nil
}

// confirm reads a single line from stdin and accepts y/yes.
func confirm() bool {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func runGoalMove(_ *cobra.Command, args []string) error {
	var dir int
	switch strings.ToLower(args[1]) {
	case "up":
		dir = -1
	case "down":
		dir = 1
	default:
		return fmt.Errorf("direction must be up or down, got %q", args[1])
	}

	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := s.Resolve(args[0])
	if err != nil {
		return err
	}
	if err := s.Move(g.ID, dir); err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Moved %s %s", g.Name, strings.ToLower(args[1])))
	return nil
}

func runGoalDuplicate(_ *cobra.Command, args []string) error {
	db, s, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := s.Resolve(args[0])
	if err != nil {
		return err
	}
	newName := ""
	if len(args) > 1 {
		newName = strings.Join(args[1:], " ")
	}
	copyGoal, err := s.Duplicate(g.ID, newName)
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Duplicated %s as %s", g.Name, ui.Accent.Render(copyGoal.Name)))
	return nil
}
