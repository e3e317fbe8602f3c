package tui

// InteractionMode is what keys currently act on.
type InteractionMode int

const (
	// ModeBrowse moves the selection and drives the transport.
	ModeBrowse InteractionMode = iota
	// ModeGrab drags the selected clip.
	ModeGrab
	// ModeForm hands keys to an open form.
	ModeForm
)

// String returns the label shown by the mode indicator.
func (m InteractionMode) String() string {
	switch m {
	case ModeGrab:
		return "Grab"
	case ModeForm:
		return "Form"
	default:
		return "Browse"
	}
}

func (m InteractionMode) hint() string {
	switch m {
	case ModeGrab:
		return "arrows drag, enter drops"
	case ModeForm:
		return "esc cancels"
	default:
		return "enter grabs the selected clip"
	}
}
