package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/strivecli/strive/internal/dateutil"
	"github.com/strivecli/strive/internal/goal"
	"github.com/strivecli/strive/internal/ui"
)

// CalendarAction represents an action taken in the calendar TUI.
type CalendarAction struct {
	Type   string // "log", "unlog", "skip", "unskip"
	GoalID string
	Date   string
}

// CalendarModel is an interactive month view: a Monday-first grid with a dot
// per scheduled goal, and the selected day's task list underneath.
type CalendarModel struct {
	goals []goal.Goal
	today string

	year  int
	month time.Month

	selected string // date-only cursor within the grid
	taskIdx  int    // cursor within the selected day's task list

	// terminal dimensions
	width  int
	height int

	// pending actions to apply after quitting
	Actions []CalendarAction

	quitting bool
}

// NewCalendarModel creates a calendar model focused on the given month.
func NewCalendarModel(goals []goal.Goal, year int, month time.Month, today string) *CalendarModel {
	selected := today
	if t, ok := dateutil.FromDateOnly(today); !ok || t.Year() != year || t.Month() != month {
		selected = fmt.Sprintf("%04d-%02d-01", year, month)
	}
	return &CalendarModel{
		goals:    goals,
		today:    today,
		year:     year,
		month:    month,
		selected: selected,
		width:    80,
		height:   24,
	}
}

// RunCalendar launches the interactive calendar. Returns actions for the
// caller to apply.
func RunCalendar(goals []goal.Goal, year int, month time.Month, today string) ([]CalendarAction, error) {
	m := NewCalendarModel(goals, year, month, today)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	result, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("calendar tui: %w", err)
	}
	final := result.(*CalendarModel)
	return final.Actions, nil
}

func (m *CalendarModel) Init() tea.Cmd {
	return nil
}

func (m *CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *CalendarModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "h", "left":
		m.moveDay(-1)

	case "l", "right":
		m.moveDay(1)

	case "k", "up":
		m.moveDay(-7)

	case "j", "down":
		m.moveDay(7)

	case "p", "[":
		m.changeMonth(-1)

	case "n", "]":
		m.changeMonth(1)

	case "t":
		if t, ok := dateutil.FromDateOnly(m.today); ok {
			m.year, m.month = t.Year(), t.Month()
			m.selected = m.today
			m.taskIdx = 0
		}

	case "tab", "J":
		if n := len(m.dayTasks(m.selected)); n > 0 {
			m.taskIdx = (m.taskIdx + 1) % n
		}

	case "shift+tab", "K":
		if n := len(m.dayTasks(m.selected)); n > 0 {
			m.taskIdx = (m.taskIdx + n - 1) % n
		}

	case "x", " ", "enter":
		m.toggleLog()

	case "s":
		m.toggleSkip()
	}

	return m, nil
}

// moveDay shifts the grid cursor, following into the previous or next month
// when it walks off an edge.
func (m *CalendarModel) moveDay(delta int) {
	next := dateutil.AddDays(m.selected, delta)
	if t, ok := dateutil.FromDateOnly(next); ok {
		m.year, m.month = t.Year(), t.Month()
	}
	m.selected = next
	m.taskIdx = 0
}

func (m *CalendarModel) changeMonth(delta int) {
	anchor := time.Date(m.year, m.month, 1, 12, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	m.year, m.month = anchor.Year(), anchor.Month()
	m.selected = fmt.Sprintf("%04d-%02d-01", m.year, m.month)
	m.taskIdx = 0
}

// toggleLog records a check-in for the selected task, or removes today's
// record if one exists. The local copy is updated for immediate feedback; the
// caller applies the queued action to the store.
func (m *CalendarModel) toggleLog() {
	tasks := m.dayTasks(m.selected)
	if len(tasks) == 0 {
		return
	}
	if m.taskIdx >= len(tasks) {
		m.taskIdx = len(tasks) - 1
	}
	g := tasks[m.taskIdx]

	if g.HasRecordOn(m.selected) {
		m.Actions = append(m.Actions, CalendarAction{Type: "unlog", GoalID: g.ID, Date: m.selected})
		for i := range m.goals {
			if m.goals[i].ID != g.ID {
				continue
			}
			kept := m.goals[i].Records[:0]
			removed := false
			for _, r := range m.goals[i].Records {
				if !removed && r.Date == m.selected {
					removed = true
					continue
				}
				kept = append(kept, r)
			}
			m.goals[i].Records = kept
		}
		return
	}

	m.Actions = append(m.Actions, CalendarAction{Type: "log", GoalID: g.ID, Date: m.selected})
	for i := range m.goals {
		if m.goals[i].ID == g.ID {
			m.goals[i].Records = append(m.goals[i].Records, goal.Record{Date: m.selected})
		}
	}
}

// toggleSkip excludes the selected day from the selected task's schedule, or
// restores it if already skipped. Skipping hides the task, so the skip toggle
// also looks at goals that would be due were the day not skipped.
func (m *CalendarModel) toggleSkip() {
	tasks := m.dayTasks(m.selected)
	if len(tasks) > 0 {
		if m.taskIdx >= len(tasks) {
			m.taskIdx = len(tasks) - 1
		}
		g := tasks[m.taskIdx]
		m.Actions = append(m.Actions, CalendarAction{Type: "skip", GoalID: g.ID, Date: m.selected})
		for i := range m.goals {
			if m.goals[i].ID == g.ID {
				m.goals[i].PlanSkipDates = append(m.goals[i].PlanSkipDates, m.selected)
			}
		}
		m.taskIdx = 0
		return
	}

	// No visible tasks: restore the first goal skipped on this day.
	for i := range m.goals {
		g := &m.goals[i]
		if !g.SkipsDate(m.selected) {
			continue
		}
		m.Actions = append(m.Actions, CalendarAction{Type: "unskip", GoalID: g.ID, Date: m.selected})
		kept := g.PlanSkipDates[:0]
		for _, d := range g.PlanSkipDates {
			if d != m.selected {
				kept = append(kept, d)
			}
		}
		g.PlanSkipDates = kept
		return
	}
}

func (m *CalendarModel) dayTasks(dateOnly string) []goal.Goal {
	return goal.ScheduledOn(m.goals, dateOnly)
}

// monthGrid lays out a month as Monday-first weeks. Cells outside the month
// are empty strings.
func monthGrid(year int, month time.Month) [][]string {
	lead := dateutil.FirstWeekdayIndex(year, month)
	days := dateutil.DaysInMonth(year, month)

	var weeks [][]string
	week := make([]string, 7)
	col := lead
	for day := 1; day <= days; day++ {
		week[col] = fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]string, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

func (m *CalendarModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("  %s %s %d", ui.IconCalendar, m.month.String(), m.year)
	b.WriteString(ui.Title.Render(title) + "\n\n")

	b.WriteString(ui.Muted.Render("   Mo   Tu   We   Th   Fr   Sa   Su") + "\n")

	for _, week := range monthGrid(m.year, m.month) {
		var dayLine, dotLine strings.Builder
		for _, date := range week {
			if date == "" {
				dayLine.WriteString("     ")
				dotLine.WriteString("     ")
				continue
			}

			style := lipgloss.NewStyle()
			switch {
			case date == m.selected:
				style = style.Foreground(ui.Bright).Background(ui.Sky).Bold(true)
			case date == m.today:
				style = ui.Accent
			}
			dayLine.WriteString("  " + style.Render(fmt.Sprintf("%2s", strings.TrimPrefix(date[8:], "0"))) + " ")

			due := m.dayTasks(date)
			dots := len(due)
			if dots > 3 {
				dots = 3
			}
			logged := 0
			for _, g := range due {
				if g.HasRecordOn(date) {
					logged++
				}
			}
			marker := strings.Repeat(ui.IconDot, dots)
			dotStyle := ui.Muted
			if dots > 0 && logged == len(due) {
				dotStyle = ui.Success
			}
			dotLine.WriteString("  " + dotStyle.Render(fmt.Sprintf("%-2s", marker)) + " ")
		}
		b.WriteString(dayLine.String() + "\n")
		b.WriteString(dotLine.String() + "\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.Subtitle.Render("  "+dateutil.FormatDisplay(m.selected)) + "\n")

	tasks := m.dayTasks(m.selected)
	if len(tasks) == 0 {
		b.WriteString("  " + ui.Muted.Render("Nothing planned.") + "\n")
	}
	for i, g := range tasks {
		pointer := "  "
		if i == m.taskIdx {
			pointer = ui.Accent.Render(ui.IconArrow + " ")
		}
		marker := " "
		if g.HasRecordOn(m.selected) {
			marker = ui.Success.Render("✓")
		}
		b.WriteString(fmt.Sprintf("  %s%s %s %s\n", pointer, marker, ui.GoalIcon(g.IconKey), g.DisplayName()))
	}

	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("  h/j/k/l move · n/p month · t today · tab task · x log · s skip · q quit") + "\n")

	return b.String()
}
