package timeline

// DragState is a clip's position in the drag lifecycle.
//
//	Idle -> Pressed -> Dragging -> (Snapped | Unsnapped) -> Idle
//
// Pressed and Idle only drive the visual held indicator.
type DragState int

const (
	Idle DragState = iota
	Pressed
	Dragging
	Snapped
	Unsnapped
)

// String returns the state name.
func (s DragState) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	case Snapped:
		return "snapped"
	case Unsnapped:
		return "unsnapped"
	default:
		return "idle"
	}
}

// Clip is a snapshot of one clip.
type Clip struct {
	ID             ClipID
	Lane           int
	StartFrame     int
	DurationFrames int
	// SnappedTo is the partner clip, or NoClip.
	SnappedTo ClipID
	VideoID   int
	State     DragState
	// Y is the scene y of the clip's lane; PendingY accumulates vertical drag.
	Y        float64
	PendingY float64
	// StartSeconds is StartFrame at the track frame rate.
	StartSeconds float64
}

// EndFrame returns the first frame after the clip.
func (c Clip) EndFrame() int {
	return c.StartFrame + c.DurationFrames
}

// Held reports whether the clip is being held by the user.
func (c Clip) Held() bool {
	return c.State != Idle
}

type clip struct {
	id       ClipID
	lane     int
	start    int
	duration int
	snapped  ClipID
	videoID  int
	state    DragState
	y        float64

	// Drag anchor: the pending start is anchorStart + dragPixels/zoom.
	anchorStart float64
	dragPixels  float64
	pendingY    float64
}

func (c *clip) end() int {
	return c.start + c.duration
}

func (c *clip) snapshot(fps float64) Clip {
	return Clip{
		ID:             c.id,
		Lane:           c.lane,
		StartFrame:     c.start,
		DurationFrames: c.duration,
		SnappedTo:      c.snapped,
		VideoID:        c.videoID,
		State:          c.state,
		Y:              c.y,
		PendingY:       c.pendingY,
		StartSeconds:   float64(c.start) / fps,
	}
}

// Press marks a clip as held and anchors a new drag at its current position.
func (e *Engine) Press(id ClipID) error {
	defer e.enter()()
	c, err := e.lookup(id)
	if err != nil {
		return err
	}
	e.press(c)
	return nil
}

func (e *Engine) press(c *clip) {
	c.state = Pressed
	c.anchorStart = float64(c.start)
	c.dragPixels = 0
	c.pendingY = c.y
}

// Release ends a drag and clears the held indicator.
func (e *Engine) Release(id ClipID) error {
	defer e.enter()()
	c, err := e.lookup(id)
	if err != nil {
		return err
	}
	c.state = Idle
	c.dragPixels = 0
	return nil
}

// unsnap breaks c's snap relation on both sides.
func (e *Engine) unsnap(c *clip) {
	if c.snapped == NoClip {
		return
	}
	if other := e.clips[c.snapped]; other != nil && other.snapped == c.id {
		other.snapped = NoClip
	}
	c.snapped = NoClip
}

// snap links a and b symmetrically.
func (e *Engine) snap(a, b *clip) {
	a.snapped = b.id
	b.snapped = a.id
}
