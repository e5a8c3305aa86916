package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderNote renders a goal note for the detail view. Notes are treated as
// markdown when stdout is a terminal; in pipes the raw text passes through so
// output stays grep-able.
func RenderNote(note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return ""
	}
	if !IsInteractive() {
		return note
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return note
	}
	out, err := r.Render(note)
	if err != nil {
		return note
	}
	return strings.TrimRight(out, "\n")
}
