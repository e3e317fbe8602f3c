package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/splice-cli/tui/styles"
)

// Theme returns a huh theme matching the editor palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	button := func(bg, text lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Background(bg).Foreground(text).Padding(0, 1)
	}

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Focus).
		PaddingLeft(1)
	t.Focused.Title = fg(styles.Title).Bold(true)
	t.Focused.NoteTitle = fg(styles.Title).Bold(true)
	t.Focused.Description = fg(styles.Dim)
	t.Focused.ErrorIndicator = fg(styles.Red).Bold(true)
	t.Focused.ErrorMessage = fg(styles.Red)
	t.Focused.SelectSelector = fg(styles.Snap).SetString("▸ ")
	t.Focused.Option = fg(styles.Text)
	t.Focused.NextIndicator = fg(styles.Dim)
	t.Focused.PrevIndicator = fg(styles.Dim)
	t.Focused.SelectedOption = fg(styles.Snap)
	t.Focused.TextInput.Cursor = fg(styles.Snap)
	t.Focused.TextInput.Placeholder = fg(styles.Rule)
	t.Focused.TextInput.Prompt = fg(styles.Snap)
	t.Focused.TextInput.Text = fg(styles.Text)
	t.Focused.FocusedButton = button(styles.Focus, styles.Text).Bold(true)
	t.Focused.BlurredButton = button(styles.Slate, styles.Dim)
	t.Focused.Next = t.Focused.FocusedButton
	t.Focused.Card = styles.Border.Padding(0, 1)

	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	t.Blurred.Title = fg(styles.Dim)
	t.Blurred.NoteTitle = fg(styles.Dim)
	t.Blurred.Description = fg(styles.Rule)
	t.Blurred.ErrorIndicator = fg(styles.Red)
	t.Blurred.ErrorMessage = fg(styles.Red)
	t.Blurred.SelectSelector = lipgloss.NewStyle().SetString("  ")
	t.Blurred.Option = fg(styles.Dim)
	t.Blurred.SelectedOption = fg(styles.Dim)
	t.Blurred.TextInput.Cursor = fg(styles.Rule)
	t.Blurred.TextInput.Placeholder = fg(styles.Rule)
	t.Blurred.TextInput.Prompt = fg(styles.Rule)
	t.Blurred.TextInput.Text = fg(styles.Dim)
	t.Blurred.FocusedButton = button(styles.Rule, styles.Text)
	t.Blurred.BlurredButton = button(styles.Ink, styles.Rule)
	t.Blurred.Next = t.Blurred.FocusedButton
	t.Blurred.Card = styles.Border.BorderForeground(styles.Slate).Padding(0, 1)

	return t
}
