package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/splice-cli/display"
	"github.com/user/splice-cli/source"
	"github.com/user/splice-cli/tui/styles"
)

// PlayerState is what the player panel shows.
type PlayerState struct {
	// Title names the loaded video; empty when nothing is loaded.
	Title    string
	Playing  bool
	Position string
	Duration string
	FPS      float64
	// Frame is the most recently displayed frame, if any.
	Frame    source.Frame
	HasFrame bool
}

// PlayerPanel renders the current frame above a transport status line,
// inside a width x height box.
func PlayerPanel(state PlayerState, width, height int) string {
	if width < 10 || height < 4 {
		return ""
	}
	inner := width - 2
	rows := height - 3 // borders + status line

	var picture []string
	switch {
	case state.Title == "":
		picture = centered(styles.SecondaryText.Render("No video loaded. Press p on a clip to preview it."), inner, rows)
	case !state.HasFrame:
		picture = centered(styles.SecondaryText.Render("Paused"), inner, rows)
	default:
		picture = centered(display.RenderHalfBlocks(state.Frame, inner, rows), inner, rows)
	}

	icon := "⏸"
	if state.Playing {
		icon = "▶"
	}
	status := fmt.Sprintf(" %s %s / %s", icon, state.Position, state.Duration)
	if state.FPS > 0 {
		status += fmt.Sprintf("  %.3g fps", state.FPS)
	}
	lines := append(picture, lipgloss.NewStyle().Foreground(styles.Text).Bold(true).Render(status))

	title := "Player"
	if state.Title != "" {
		title = "Player: " + state.Title
	}
	return RenderBox(truncate(title, inner-4), lines, width)
}

// centered places a block in the middle of a width x height area.
func centered(block string, width, height int) []string {
	lines := strings.Split(block, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	top := (height - len(lines)) / 2
	out := make([]string, 0, height)
	for i := 0; i < top; i++ {
		out = append(out, "")
	}
	for _, l := range lines {
		out = append(out, repeat(" ", (width-lipgloss.Width(l))/2)+l)
	}
	for len(out) < height {
		out = append(out, "")
	}
	return out
}
