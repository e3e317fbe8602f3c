// Package styles provides Lipgloss styles for the editor using a dark
// cutting-room palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Colour palette
const (
	// Ink is the main background colour
	Ink = lipgloss.Color("#15171C")
	// Slate is the status bar and panel background
	Slate = lipgloss.Color("#22262E")
	// Rule is the border and ruler colour
	Rule = lipgloss.Color("#4A5160")
	// Focus is used for the selected clip and focused form fields
	Focus = lipgloss.Color("#5E81AC")
	// Dim is secondary text
	Dim = lipgloss.Color("#8C93A3")
	// Text is primary text
	Text = lipgloss.Color("#E5E9F0")
	// Title is used for panel headers
	Title = lipgloss.Color("#EBCB8B")
	// ClipFill is the body of an idle clip
	ClipFill = lipgloss.Color("#3B6E6A")
	// ClipHeld is the body of a clip being dragged
	ClipHeld = lipgloss.Color("#D08770")
	// Snap marks a snapped edge
	Snap = lipgloss.Color("#88C0D0")
	// Playhead marks the current frame on the ruler
	Playhead = lipgloss.Color("#BF616A")
	// Red is used for errors
	Red = lipgloss.Color("#BF616A")
	// Green is used for confirmations
	Green = lipgloss.Color("#A3BE8C")
)

// Border frames panels.
var Border = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Rule)

// Header is the tab label of a panel.
var Header = lipgloss.NewStyle().
	Foreground(Title).
	Bold(true)

// Clip renders an idle clip body.
var Clip = lipgloss.NewStyle().
	Background(ClipFill).
	Foreground(Text)

// Selected renders the clip under the cursor.
var Selected = lipgloss.NewStyle().
	Background(Focus).
	Foreground(Text).
	Bold(true)

// Held renders a clip that is pressed or being dragged.
var Held = lipgloss.NewStyle().
	Background(ClipHeld).
	Foreground(Ink).
	Bold(true)

// PrimaryText is the style for primary text content
var PrimaryText = lipgloss.NewStyle().
	Foreground(Text)

// SecondaryText is the style for less prominent text
var SecondaryText = lipgloss.NewStyle().
	Foreground(Dim)

// Warning is the style for error messages
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is the style for confirmations
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)
