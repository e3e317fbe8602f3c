package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/splice-cli/tui/styles"
)

// ClipItem is one row of the clip list.
type ClipItem struct {
	ID       int
	Lane     int
	Start    string
	Length   string
	Video    string
	Snapped  bool
	Held     bool
	Selected bool
}

// ClipList renders clips as a table, keeping the selected row visible.
func ClipList(items []ClipItem, width, height int) string {
	rows := height - 3 // border + header
	if rows < 1 {
		rows = 1
	}
	inner := width - 2

	offset := 0
	for i, it := range items {
		if it.Selected && i >= rows {
			offset = i - rows + 1
		}
	}

	head := lipgloss.NewStyle().Foreground(styles.Dim).Bold(true)
	lines := []string{head.Render(fmt.Sprintf(" %-4s %-3s %-10s %-8s %s", "ID", "LN", "START", "LENGTH", "VIDEO"))}
	if len(items) == 0 {
		lines = append(lines, styles.SecondaryText.Render(" No clips. Press n to add one."))
	}
	for i := offset; i < len(items) && i < offset+rows; i++ {
		lines = append(lines, clipRow(items[i], inner))
	}
	return RenderBox(fmt.Sprintf("Clips (%d)", len(items)), lines, width)
}

func clipRow(it ClipItem, width int) string {
	id := fmt.Sprintf("#%d", it.ID)
	if it.Snapped {
		id += "⇄"
	}
	row := fmt.Sprintf(" %-4s %-3d %-10s %-8s %s", id, it.Lane+1, it.Start, it.Length, it.Video)
	row = padCells(row, width)

	switch {
	case it.Held:
		return styles.Held.Render(row)
	case it.Selected:
		return styles.Selected.Render(row)
	}
	return styles.PrimaryText.Render(row)
}

// truncate cuts s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// repeat returns s repeated to fill n cells, or "" for n <= 0.
func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}
