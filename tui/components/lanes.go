package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/splice-cli/tui/styles"
)

// LaneGutter is the width of the lane label column.
const LaneGutter = 4

// RulerMark is a labelled tick at a track column.
type RulerMark struct {
	Col   int
	Label string
}

// ClipSpan is a clip laid out in track columns. To is exclusive.
type ClipSpan struct {
	ID        int
	From, To  int
	Selected  bool
	Held      bool
	SnapLeft  bool
	SnapRight bool
}

// LaneRow is one lane of clips.
type LaneRow struct {
	Spans  []ClipSpan
	Active bool
}

// LanesState is what the lanes view shows.
type LanesState struct {
	Title string
	Ruler []RulerMark
	Rows  []LaneRow
	// Playhead is the track column of the playhead, or -1.
	Playhead int
}

// TrackWidth returns the number of track columns a lanes view of the given
// total width provides.
func TrackWidth(width int) int {
	return max(width-2-LaneGutter, 0)
}

// LanesHeight returns the rendered height for n lanes.
func LanesHeight(n int) int {
	return n + 4 // borders + two ruler lines
}

// Lanes renders the ruler and one row per lane.
func Lanes(state LanesState, width int) string {
	track := TrackWidth(width)
	if track < 1 {
		return ""
	}
	gutter := repeat(" ", LaneGutter)
	labels, ticks := ruler(state.Ruler, state.Playhead, track)

	lines := []string{gutter + labels, gutter + ticks}
	for i, row := range state.Rows {
		name := fmt.Sprintf("L%-2d", i+1)
		if row.Active {
			name = styles.Header.Render(name)
		} else {
			name = styles.SecondaryText.Render(name)
		}
		lines = append(lines, name+lipgloss.NewStyle().Foreground(styles.Rule).Render("│")+laneTrack(row, track))
	}
	return RenderBox(state.Title, lines, width)
}

func ruler(marks []RulerMark, playhead, width int) (string, string) {
	labels := []rune(repeat(" ", width))
	ticks := []rune(repeat("─", width))
	next := 0
	for _, m := range marks {
		if m.Col < 0 || m.Col >= width {
			continue
		}
		ticks[m.Col] = '┬'
		if m.Col < next {
			continue
		}
		for i, r := range m.Label {
			if m.Col+i >= width {
				break
			}
			labels[m.Col+i] = r
		}
		next = m.Col + len(m.Label) + 1
	}

	rule := lipgloss.NewStyle().Foreground(styles.Rule)
	tickLine := rule.Render(string(ticks))
	if playhead >= 0 && playhead < width {
		head := lipgloss.NewStyle().Foreground(styles.Playhead).Bold(true).Render("▼")
		tickLine = rule.Render(string(ticks[:playhead])) + head + rule.Render(string(ticks[playhead+1:]))
	}
	return styles.SecondaryText.Render(string(labels)), tickLine
}

type paintKind int

const (
	paintEmpty paintKind = iota
	paintClip
	paintSelected
	paintHeld
	paintSnap
)

func (k paintKind) style() lipgloss.Style {
	switch k {
	case paintClip:
		return styles.Clip
	case paintSelected:
		return styles.Selected
	case paintHeld:
		return styles.Held
	case paintSnap:
		return lipgloss.NewStyle().Background(styles.ClipFill).Foreground(styles.Snap).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(styles.Slate)
}

func laneTrack(row LaneRow, width int) string {
	runes := []rune(repeat("·", width))
	kinds := make([]paintKind, width)

	for _, s := range row.Spans {
		kind := paintClip
		switch {
		case s.Held:
			kind = paintHeld
		case s.Selected:
			kind = paintSelected
		}
		from, to := max(s.From, 0), min(s.To, width)
		for c := from; c < to; c++ {
			runes[c] = ' '
			kinds[c] = kind
		}
		for i, r := range fmt.Sprintf("#%d", s.ID) {
			c := s.From + 1 + i
			if c >= to-1 || c < from {
				break
			}
			runes[c] = r
		}
		if s.SnapLeft && s.From >= 0 && s.From < width {
			runes[s.From] = '┃'
			kinds[s.From] = paintSnap
		}
		if s.SnapRight && s.To-1 >= 0 && s.To-1 < width {
			runes[s.To-1] = '┃'
			kinds[s.To-1] = paintSnap
		}
	}

	var b strings.Builder
	for start := 0; start < width; {
		end := start + 1
		for end < width && kinds[end] == kinds[start] {
			end++
		}
		b.WriteString(kinds[start].style().Render(string(runes[start:end])))
		start = end
	}
	return b.String()
}
