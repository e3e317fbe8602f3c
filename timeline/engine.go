// Package timeline implements the layout engine behind the editor's lanes.
//
// An Engine owns an ordered stack of lanes, an arena of clips addressed by
// ClipID, and the zoom transform between screen pixels and timeline frames.
// Clips refer to their lane and to their snap partner by index only; the
// engine updates both ends of every relation inside a single call.
//
// An Engine has a single writer. All mutating methods must be called from the
// same goroutine (the interactive context); overlapping mutations panic.
package timeline

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/user/splice-cli/interval"
)

var (
	// ErrInvalidLane is returned for lane indexes outside the current stack.
	ErrInvalidLane = errors.New("timeline: invalid lane reference")
	// ErrInvalidClip is returned for unknown or removed clip ids.
	ErrInvalidClip = errors.New("timeline: invalid clip reference")
	// ErrLastLane is returned when removing the only remaining lane.
	ErrLastLane = errors.New("timeline: cannot remove the last remaining lane")
	// ErrLaneOccupied is returned when lane removal policy refuses a lane with clips.
	ErrLaneOccupied = errors.New("timeline: lane still holds clips")
	// ErrClipTooLong is returned for clips that cannot fit on the timeline.
	ErrClipTooLong = errors.New("timeline: clip longer than the timeline")
	// ErrInvalidDuration is returned for non-positive clip durations.
	ErrInvalidDuration = errors.New("timeline: clip duration must be positive")
)

// ClipID addresses a clip in the engine's arena.
type ClipID int

// NoClip marks an absent clip reference.
const NoClip ClipID = -1

// Lane is a snapshot of one lane.
type Lane struct {
	Index  int
	Y      float64
	Height float64
	Width  float64
	Clips  []ClipID
}

type lane struct {
	index  int
	y      float64
	height float64
	width  float64
	clips  []ClipID
	starts *interval.Index[ClipID]
	ends   *interval.Index[ClipID]
}

func (l *lane) snapshot() Lane {
	clips := make([]ClipID, len(l.clips))
	copy(clips, l.clips)
	return Lane{Index: l.index, Y: l.y, Height: l.height, Width: l.width, Clips: clips}
}

// Engine is the timeline layout engine.
type Engine struct {
	cfg       Config
	maxFrames int

	lanes []*lane
	clips []*clip

	zoom    float64
	minZoom float64
	scrollX float64

	busy atomic.Bool
}

// New returns an engine with a single empty lane.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:       cfg,
		maxFrames: cfg.MaxFrames(),
		zoom:      1,
	}
	e.minZoom = cfg.ViewportWidth / float64(e.maxFrames)
	e.AddLane()
	e.SetZoom(e.zoom)
	return e, nil
}

// enter marks the start of a mutation and returns the matching exit.
func (e *Engine) enter() func() {
	if !e.busy.CompareAndSwap(false, true) {
		panic("timeline: concurrent mutation of engine")
	}
	return func() { e.busy.Store(false) }
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// MaxFrames returns the timeline length in frames.
func (e *Engine) MaxFrames() int {
	return e.maxFrames
}

// AddLane appends a lane directly below the last one.
func (e *Engine) AddLane() Lane {
	defer e.enter()()
	idx := len(e.lanes)
	l := &lane{
		index:  idx,
		y:      e.cfg.LaneOffset + float64(idx)*e.cfg.LaneHeight,
		height: e.cfg.LaneHeight,
		width:  float64(e.maxFrames),
		starts: interval.New[ClipID](),
		ends:   interval.New[ClipID](),
	}
	e.lanes = append(e.lanes, l)
	return l.snapshot()
}

// RemoveLastLane pops the last lane. What happens to its clips depends on the
// configured LaneRemovalPolicy. The only remaining lane is never removed.
func (e *Engine) RemoveLastLane() error {
	defer e.enter()()
	if len(e.lanes) <= 1 {
		return ErrLastLane
	}
	last := e.lanes[len(e.lanes)-1]

	switch e.cfg.LaneRemoval {
	case RemoveRejectOccupied:
		if len(last.clips) > 0 {
			return fmt.Errorf("%w: lane %d has %d clips", ErrLaneOccupied, last.index, len(last.clips))
		}
	case RemoveReassignClips:
		if err := e.reassign(last, e.lanes[len(e.lanes)-2]); err != nil {
			return err
		}
	default:
		for _, id := range append([]ClipID(nil), last.clips...) {
			e.dropClip(e.clips[id])
		}
	}

	e.lanes = e.lanes[:len(e.lanes)-1]
	return nil
}

// reassign moves every clip of from into to. Under a non-allow overlap
// policy each clip is placed at the first free start at or after its current
// one; if any clip cannot be placed nothing is moved.
func (e *Engine) reassign(from, to *lane) error {
	type move struct {
		c     *clip
		start int
	}
	var planned []span
	moves := make([]move, 0, len(from.clips))
	for _, id := range from.clips {
		c := e.clips[id]
		start := c.start
		if e.cfg.Overlap != OverlapAllow {
			var ok bool
			start, ok = e.firstFree(to, c.start, c.duration, NoClip, planned)
			if !ok {
				return fmt.Errorf("%w: no room in lane %d for clip %d", ErrLaneOccupied, to.index, id)
			}
		}
		planned = append(planned, span{start, start + c.duration})
		moves = append(moves, move{c, start})
	}
	for _, m := range moves {
		if m.start != m.c.start {
			e.unsnap(m.c)
		}
		e.place(m.c, to.index, m.start)
	}
	return nil
}

// AssignLane returns the lane under scene coordinate y, clamped into the
// current stack.
func (e *Engine) AssignLane(y float64) Lane {
	return e.lanes[e.laneIndexAt(y)].snapshot()
}

func (e *Engine) laneIndexAt(y float64) int {
	idx := int(math.Floor((y - e.cfg.LaneOffset) / e.cfg.LaneHeight))
	if idx < 0 {
		return 0
	}
	if idx >= len(e.lanes) {
		return len(e.lanes) - 1
	}
	return idx
}

// Lanes returns snapshots of all lanes in index order.
func (e *Engine) Lanes() []Lane {
	out := make([]Lane, len(e.lanes))
	for i, l := range e.lanes {
		out[i] = l.snapshot()
	}
	return out
}

// LaneCount returns the number of lanes.
func (e *Engine) LaneCount() int {
	return len(e.lanes)
}

// Lane returns the lane at index.
func (e *Engine) Lane(index int) (Lane, error) {
	if index < 0 || index >= len(e.lanes) {
		return Lane{}, fmt.Errorf("%w: %d", ErrInvalidLane, index)
	}
	return e.lanes[index].snapshot(), nil
}

// ClipOption configures a clip created by AddClip.
type ClipOption func(*clip)

// WithVideo records the catalog video a clip was cut from.
func WithVideo(videoID int) ClipOption {
	return func(c *clip) { c.videoID = videoID }
}

// AddClip creates a clip of the given length at the origin of lane and zooms
// so that the clip, plus the configured margin, fills the viewport.
//
// Under a non-allow overlap policy the clip is placed at the first free frame
// at or after the origin.
func (e *Engine) AddClip(laneIndex int, seconds float64, opts ...ClipOption) (ClipID, error) {
	exit := e.enter()
	if laneIndex < 0 || laneIndex >= len(e.lanes) {
		exit()
		return NoClip, fmt.Errorf("%w: %d", ErrInvalidLane, laneIndex)
	}
	frames := int(math.Round(e.cfg.TrackFPS * seconds))
	if frames <= 0 {
		exit()
		return NoClip, fmt.Errorf("%w: %gs", ErrInvalidDuration, seconds)
	}
	if frames > e.maxFrames-1 {
		exit()
		return NoClip, fmt.Errorf("%w: %d frames, timeline holds %d", ErrClipTooLong, frames, e.maxFrames-1)
	}

	l := e.lanes[laneIndex]
	start := 0
	if e.cfg.Overlap != OverlapAllow {
		var ok bool
		if start, ok = e.firstFree(l, 0, frames, NoClip, nil); !ok {
			exit()
			return NoClip, fmt.Errorf("%w: no room in lane %d", ErrLaneOccupied, laneIndex)
		}
	}

	c := &clip{
		id:       ClipID(len(e.clips)),
		lane:     -1,
		duration: frames,
		videoID:  -1,
		snapped:  NoClip,
	}
	for _, opt := range opts {
		opt(c)
	}
	e.clips = append(e.clips, c)
	e.place(c, laneIndex, start)
	exit()

	e.SetZoom(e.cfg.ViewportWidth / (float64(frames) * e.cfg.ClipMargin))
	return c.id, nil
}

// RemoveClip deletes a clip, breaking its snap relation on both sides.
func (e *Engine) RemoveClip(id ClipID) error {
	defer e.enter()()
	c, err := e.lookup(id)
	if err != nil {
		return err
	}
	e.dropClip(c)
	return nil
}

// Clip returns a snapshot of a live clip.
func (e *Engine) Clip(id ClipID) (Clip, error) {
	c, err := e.lookup(id)
	if err != nil {
		return Clip{}, err
	}
	return c.snapshot(e.cfg.TrackFPS), nil
}

// Clips returns snapshots of all live clips in id order.
func (e *Engine) Clips() []Clip {
	var out []Clip
	for _, c := range e.clips {
		if c != nil {
			out = append(out, c.snapshot(e.cfg.TrackFPS))
		}
	}
	return out
}

func (e *Engine) lookup(id ClipID) (*clip, error) {
	if id < 0 || int(id) >= len(e.clips) || e.clips[id] == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidClip, id)
	}
	return e.clips[id], nil
}

// place moves c to start within lane index, keeping the lane's clip list and
// boundary indexes current.
func (e *Engine) place(c *clip, laneIndex, start int) {
	if c.lane >= 0 {
		old := e.lanes[c.lane]
		old.starts.Delete(c.start, c.id)
		old.ends.Delete(c.start+c.duration, c.id)
		if c.lane != laneIndex {
			old.clips = removeID(old.clips, c.id)
		}
	}
	l := e.lanes[laneIndex]
	if c.lane != laneIndex {
		l.clips = append(l.clips, c.id)
	}
	c.lane = laneIndex
	c.y = l.y
	c.start = start
	l.starts.Insert(c.start, c.id)
	l.ends.Insert(c.start+c.duration, c.id)
}

func (e *Engine) dropClip(c *clip) {
	e.unsnap(c)
	l := e.lanes[c.lane]
	l.starts.Delete(c.start, c.id)
	l.ends.Delete(c.start+c.duration, c.id)
	l.clips = removeID(l.clips, c.id)
	e.clips[c.id] = nil
}

func removeID(ids []ClipID, id ClipID) []ClipID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
