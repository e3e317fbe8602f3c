package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/splice-cli/tui/styles"
)

// StatusBarState holds the values shown in the status bar.
type StatusBarState struct {
	Playing bool
	// Position is the formatted transport position.
	Position string
	Zoom     float64
	MinZoom  float64
	Lanes    int
	Clips    int
	// Policies is a short description of the overlap and lane policies.
	Policies string
	// Message is a transient result line; Error marks it as a failure.
	Message string
	Error   bool
}

// StatusBar renders a single full-width line: transport state on the left,
// layout state on the right, and a transient message in between.
func StatusBar(state StatusBarState, width int) string {
	icon := "⏸"
	if state.Playing {
		icon = "▶"
	}
	left := fmt.Sprintf(" %s %s", icon, state.Position)
	right := fmt.Sprintf("zoom %s  %d lanes  %d clips  %s ", formatZoom(state.Zoom, state.MinZoom), state.Lanes, state.Clips, state.Policies)

	bar := lipgloss.NewStyle().Background(styles.Slate).Foreground(styles.Text).Bold(true)
	if state.Message != "" {
		msg := styles.Success
		if state.Error {
			msg = styles.Warning
		}
		room := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
		left += "  " + msg.Background(styles.Slate).Render(truncate(state.Message, max(room, 0)))
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	return bar.Render(padCells(left+repeat(" ", gap)+right, width))
}

// formatZoom shows pixels per frame, flagged when the zoom sits at its floor.
func formatZoom(zoom, minZoom float64) string {
	s := fmt.Sprintf("%.3gx", zoom)
	if minZoom > 0 && zoom <= minZoom {
		s += " (min)"
	}
	return s
}
