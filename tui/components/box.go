// Package components provides the editor's view components. Each renders
// plain state into a string of a requested size.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/splice-cli/tui/styles"
)

// RenderBox draws lines inside a rounded border with a tab-style title:
//
//	╭─ Title ──────╮
//	│content       │
//	╰──────────────╯
//
// Lines wider than the box are truncated.
func RenderBox(title string, lines []string, width int) string {
	if width < 4 {
		return ""
	}
	inner := width - 2
	border := lipgloss.NewStyle().Foreground(styles.Rule)

	head := styles.Header.Render(" " + title + " ")
	fill := inner - 1 - lipgloss.Width(head)
	if fill < 0 {
		fill = 0
	}
	out := make([]string, 0, len(lines)+2)
	out = append(out, border.Render("╭─")+head+border.Render(strings.Repeat("─", fill)+"╮"))
	for _, line := range lines {
		out = append(out, border.Render("│")+padCells(line, inner)+border.Render("│"))
	}
	out = append(out, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return strings.Join(out, "\n")
}

// padCells pads or truncates s to exactly width cells.
func padCells(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		return truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}
