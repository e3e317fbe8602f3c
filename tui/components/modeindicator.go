package components

import "github.com/user/splice-cli/tui/styles"

// ModeIndicator renders the current interaction mode and its hint as a box.
// mode is one of "Browse", "Grab" or "Form".
func ModeIndicator(mode, hint string, width int) string {
	left := " " + styles.Header.Render(mode)
	line := left + "  " + styles.SecondaryText.Render(hint)
	return RenderBox("Mode", []string{line}, width)
}
