package layout

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/splice-cli/tui/styles"
)

// Container clips content to a Width x Height box. When rows are cut, the
// last visible row is replaced by a count of the hidden ones.
type Container struct {
	Width  int
	Height int
}

// Render returns content constrained to exactly Width columns and Height lines.
func (c Container) Render(content string) string {
	if c.Height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if hidden := len(lines) - c.Height; hidden > 0 {
		lines = lines[:c.Height]
		more := lipgloss.NewStyle().Foreground(styles.Dim).
			Render("↓ " + strconv.Itoa(hidden+1) + " more")
		lines[c.Height-1] = more
	}
	lines = NormalizeLines(lines, c.Height)
	for i, line := range lines {
		lines[i] = PadToWidth(line, c.Width)
	}
	return strings.Join(lines, "\n")
}

