package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// strive's color palette — calm blues and greens with warm accents.
var (
	// Primary colors
	Sky     = lipgloss.Color("#0EA5E9")
	Blue    = lipgloss.Color("#2563EB")
	Teal    = lipgloss.Color("#14B8A6")
	Emerald = lipgloss.Color("#10B981")
	Amber   = lipgloss.Color("#FACC15")
	Orange  = lipgloss.Color("#F97316")
	Rose    = lipgloss.Color("#F43F5E")
	Slate   = lipgloss.Color("#64748B")
	Dim     = lipgloss.Color("#666666")
	Bright  = lipgloss.Color("#FFFFFF")
	Subtle  = lipgloss.Color("#AAAAAA")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Sky)

	Subtitle = lipgloss.NewStyle().
			Foreground(Teal)

	Success = lipgloss.NewStyle().
		Foreground(Emerald)

	Error = lipgloss.NewStyle().
		Foreground(Rose)

	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	Info = lipgloss.NewStyle().
		Foreground(Blue)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Sky).
		Bold(true)

	Celebrate = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Sky).
		Padding(0, 1)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

// Icon constants — consistent emoji language.
const (
	IconGoal     = "🎯"
	IconStreak   = "🔥"
	IconTrophy   = "🏆"
	IconDone     = "✅"
	IconCalendar = "📅"
	IconLog      = "📝"
	IconParty    = "🎉"
	IconWarn     = "⚠️ "
	IconError    = "✗ "
	IconOk       = "✓ "
	IconArrow    = "→"
	IconDot      = "·"
)

// goalIcons maps stored icon keys to terminal glyphs. The keys are the
// catalog names goals are saved with, so icons survive export and import
// unchanged even though the terminal renders emoji instead of vector art.
var goalIcons = map[string]string{
	"Target":        "🎯",
	"TrendingUp":    "📈",
	"CheckSquare":   "☑️ ",
	"Ban":           "🚫",
	"Dumbbell":      "🏋️ ",
	"Activity":      "⚡",
	"Flame":         "🔥",
	"Heart":         "❤️ ",
	"Bike":          "🚴",
	"Footprints":    "👣",
	"Timer":         "⏱ ",
	"Scale":         "⚖️ ",
	"Droplet":       "💧",
	"Leaf":          "🌿",
	"Sparkles":      "✨",
	"Brain":         "🧠",
	"Repeat":        "🔁",
	"AlarmClock":    "⏰",
	"Moon":          "🌙",
	"Sun":           "☀️ ",
	"Coffee":        "☕",
	"Apple":         "🍎",
	"Plane":         "✈️ ",
	"Briefcase":     "💼",
	"ListChecks":    "📋",
	"BookOpen":      "📖",
	"Book":          "📚",
	"GraduationCap": "🎓",
	"Code":          "💻",
	"DollarSign":    "💵",
	"PiggyBank":     "🐷",
	"Wallet":        "👛",
	"Music":         "🎵",
	"Camera":        "📷",
	"PenTool":       "✒️ ",
	"Palette":       "🎨",
	"Trophy":        "🏆",
	"Zap":           "⚡",
	"Star":          "⭐",
}

// GoalIcon returns the glyph for a stored icon key, falling back to the
// default goal icon for unknown or legacy keys.
func GoalIcon(key string) string {
	if icon, ok := goalIcons[key]; ok {
		return icon
	}
	return IconGoal
}

// GoalColour returns a lipgloss color for a goal's stored colour, falling
// back to the palette default for goals saved without one.
func GoalColour(colour string) lipgloss.Color {
	if colour == "" {
		return Sky
	}
	return lipgloss.Color(colour)
}

// IsInteractive reports whether stdout is a terminal. Non-interactive output
// (pipes, redirects) gets plain text and no TUI.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// DarkBackground reports whether rendering should assume a dark terminal.
// theme is the configured value: "dark" and "light" force it, "auto" asks
// the terminal.
func DarkBackground(theme string) bool {
	switch theme {
	case "dark":
		return true
	case "light":
		return false
	default:
		return termenv.HasDarkBackground()
	}
}

// ApplyTheme retunes the background-sensitive styles for the configured
// theme. The defaults assume a dark terminal; on a light background the
// bright value text and dim muted tone would wash out.
func ApplyTheme(theme string) {
	if DarkBackground(theme) {
		Muted = Muted.Foreground(Dim)
		ValueStyle = ValueStyle.Foreground(Bright)
		return
	}
	Muted = Muted.Foreground(Slate)
	ValueStyle = ValueStyle.Foreground(lipgloss.Color("#1E293B"))
}
