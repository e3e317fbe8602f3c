package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/splice-cli/tui/styles"
)

// Responsive layout constants.
const (
	MinTerminalWidth = 60 // below this the editor refuses to draw
	SideHideWidth    = 90 // below this the sidebar is hidden
	SideMinWidth     = 28
)

// SplitColumns divides the terminal between the player panel and the
// sidebar. One cell is reserved for the separator when the sidebar shows.
func SplitColumns(termWidth int) (player, side int, showSide bool) {
	if termWidth < SideHideWidth {
		return termWidth, 0, false
	}
	usable := termWidth - 1
	side = usable / 3
	if side < SideMinWidth {
		side = SideMinWidth
	}
	return usable - side, side, true
}

// JoinColumns joins pre-rendered columns side by side with a vertical rule.
// Each column is normalized to height and padded to its width.
func JoinColumns(columns []string, widths []int, height int) string {
	sep := lipgloss.NewStyle().Foreground(styles.Rule).Render("│")

	cols := make([][]string, len(columns))
	for i, col := range columns {
		cols[i] = NormalizeLines(strings.Split(col, "\n"), height)
	}

	rows := make([]string, height)
	for r := range rows {
		parts := make([]string, len(cols))
		for i, lines := range cols {
			parts[i] = PadToWidth(lines[r], widths[i])
		}
		rows[r] = strings.Join(parts, sep)
	}
	return strings.Join(rows, "\n")
}
