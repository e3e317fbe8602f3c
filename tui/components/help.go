package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/splice-cli/tui/styles"
)

// HelpOverlay centres the rendered key help in a bordered panel.
func HelpOverlay(help string, width, height int) string {
	title := lipgloss.NewStyle().Foreground(styles.Title).Bold(true).Render("Keybindings")
	footer := lipgloss.NewStyle().Foreground(styles.Dim).Italic(true).Render("Press any key to close")
	content := strings.Join([]string{title, "", help, "", footer}, "\n")

	panel := lipgloss.NewStyle().
		Background(styles.Slate).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Focus).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
