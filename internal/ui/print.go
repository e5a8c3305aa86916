package ui

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Err prints an error message.
func Err(msg string) {
	// Force color output for errors to ensure visibility
	styled := Error.Copy().Bold(true).Render(IconError + msg)
	fmt.Fprintln(os.Stderr, styled)
}

// Ok prints a success message.
func Ok(msg string) {
	fmt.Println(Success.Render(IconOk + msg))
}

// Inf prints an info message.
func Inf(msg string) {
	fmt.Println(Info.Render("  " + msg))
}

// Header prints a section header.
func Header(s string) {
	fmt.Println()
	fmt.Println(Title.Render(s))
	fmt.Println(Muted.Render(strings.Repeat("─", len(s)+2)))
}

// Tip prints a helpful tip.
func Tip(msg string) {
	fmt.Println()
	fmt.Println(Muted.Render("  tip: " + msg))
}

// Kv prints a key-value pair, padded.
func Kv(key string, value string) {
	k := KeyStyle.Render(fmt.Sprintf("  %-12s", key))
	v := ValueStyle.Render(value)
	fmt.Printf("%s %s\n", k, v)
}

// Greet returns the dashboard greeting.
func Greet(name string) string {
	if name == "" {
		return IconGoal + " Keep striving!"
	}
	return fmt.Sprintf("%s Keep striving, %s!", IconGoal, name)
}

// Bar renders a progress bar for a 0..1 fraction, in the goal's colour.
// Out-of-range fractions are clamped so a bar never over- or underflows its
// width.
func Bar(value01 float64, width int, colour lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(value01) || value01 < 0 {
		value01 = 0
	}
	if value01 > 1 {
		value01 = 1
	}
	filled := int(math.Round(value01 * float64(width)))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(colour).Render(bar)
}

// Percent formats a 0..1 fraction as a whole percentage.
func Percent(value01 float64) string {
	if math.IsNaN(value01) {
		value01 = 0
	}
	return fmt.Sprintf("%d%%", int(math.Round(value01*100)))
}
