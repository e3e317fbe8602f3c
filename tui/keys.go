package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the editor's bindings. It implements help.KeyMap.
type keyMap struct {
	Toggle      key.Binding
	StepBack    key.Binding
	StepForward key.Binding
	Preview     key.Binding

	NextClip   key.Binding
	PrevClip   key.Binding
	Grab       key.Binding
	Left       key.Binding
	Right      key.Binding
	NudgeLeft  key.Binding
	NudgeRight key.Binding
	Up         key.Binding
	Down       key.Binding
	Cancel     key.Binding

	ZoomIn     key.Binding
	ZoomOut    key.Binding
	AddLane    key.Binding
	RemoveLane key.Binding
	NewClip    key.Binding
	DeleteClip key.Binding

	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		StepBack:    key.NewBinding(key.WithKeys(",", "h"), key.WithHelp(",/h", "step back")),
		StepForward: key.NewBinding(key.WithKeys(".", "l"), key.WithHelp("./l", "step forward")),
		Preview:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview clip video")),

		NextClip:   key.NewBinding(key.WithKeys("tab", "]"), key.WithHelp("tab/]", "next clip")),
		PrevClip:   key.NewBinding(key.WithKeys("shift+tab", "["), key.WithHelp("shift+tab/[", "previous clip")),
		Grab:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "grab/drop clip")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "drag/scroll left")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "drag/scroll right")),
		NudgeLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "nudge left")),
		NudgeRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "nudge right")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "drag up a lane")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "drag down a lane")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "drop clip")),

		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		AddLane:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add lane")),
		RemoveLane: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove last lane")),
		NewClip:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new clip")),
		DeleteClip: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete clip")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.NextClip, k.Grab, k.NewClip, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

// FullHelp returns the bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.StepBack, k.StepForward, k.Preview},
		{k.NextClip, k.PrevClip, k.Grab, k.Left, k.Right, k.NudgeLeft, k.NudgeRight, k.Up, k.Down, k.Cancel},
		{k.ZoomIn, k.ZoomOut, k.AddLane, k.RemoveLane, k.NewClip, k.DeleteClip, k.Help, k.Quit},
	}
}
