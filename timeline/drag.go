package timeline

import (
	"math"

	"github.com/user/splice-cli/interval"
)

type nodeRef = interval.Node[ClipID]

type span struct {
	start, end int
}

func (s span) overlaps(start, end int) bool {
	return s.start < end && start < s.end
}

// DragClip applies one pointer movement to a clip.
//
// dx and dy are screen-pixel deltas since the previous call and cursorY is
// the pointer's scene y. The horizontal delta is converted to frames through
// the current zoom; the pending start is recomputed from the drag anchor on
// every call, so repeated small moves do not accumulate rounding error.
//
// The clip follows the pointer into the lane under cursorY, stays inside the
// timeline, and snaps to or unsnaps from neighbouring clip boundaries using
// thresholds that are a fixed number of screen pixels at any zoom.
func (e *Engine) DragClip(id ClipID, dx, dy, cursorY float64) (Clip, error) {
	defer e.enter()()
	c, err := e.lookup(id)
	if err != nil {
		return Clip{}, err
	}
	if c.state == Idle {
		e.press(c)
	}
	c.state = Dragging

	c.dragPixels += dx
	c.pendingY += dy
	candidate := int(math.Round(c.anchorStart + c.dragPixels/e.zoom))

	target := e.laneIndexAt(cursorY)

	hi := e.maxFrames - c.duration - 1
	if candidate < 0 || candidate > hi {
		candidate = min(max(candidate, 0), hi)
		c.anchorStart = float64(candidate)
		c.dragPixels = 0
	}

	if c.snapped != NoClip && e.clips[c.snapped] != nil {
		n := e.clips[c.snapped]
		th := e.UnsnapThreshold()
		startGap := math.Abs(float64(candidate - n.end()))
		endGap := math.Abs(float64(candidate + c.duration - n.start))
		if startGap > th && endGap > th {
			e.unsnap(c)
			e.commit(c, target, candidate)
		} else if target != c.lane {
			// A lane change that lands elsewhere leaves the partner behind.
			prev := c.start
			if got, ok := e.commit(c, target, prev); ok && got != prev {
				e.unsnap(c)
			}
		}
	} else if n, pos, ok := e.findSnap(c, target, candidate); ok {
		if got, committed := e.commit(c, target, pos); committed && got == pos {
			e.snap(c, n)
		}
	} else {
		e.commit(c, target, candidate)
	}

	if c.snapped != NoClip {
		c.state = Snapped
	} else {
		c.state = Unsnapped
	}
	return c.snapshot(e.cfg.TrackFPS), nil
}

// findSnap returns the first clip, by id, that has a boundary within the snap
// threshold of the candidate position, along with the aligned start. A clip
// whose start is near a neighbour's end is checked before a clip whose end is
// near a neighbour's start.
func (e *Engine) findSnap(c *clip, target, candidate int) (*clip, int, bool) {
	th := e.SnapThreshold()
	cs := float64(candidate)
	ce := float64(candidate + c.duration)

	var best *clip
	bestPos := 0
	consider := func(id ClipID, pos int) {
		if id == c.id {
			return
		}
		n := e.clips[id]
		if n == nil || n.snapped != NoClip || !e.inBounds(pos, c.duration) {
			return
		}
		if best == nil || n.id < best.id {
			best, bestPos = n, pos
		}
	}

	lanes := e.lanes
	if e.cfg.SnapScope == SnapSameLane {
		lanes = e.lanes[target : target+1]
	}

	for _, l := range lanes {
		l.ends.Ascend(int(math.Floor(cs-th)), int(math.Ceil(cs+th)), func(n *nodeRef) bool {
			if math.Abs(cs-float64(n.Key())) < th {
				for _, id := range n.Values() {
					consider(id, n.Key())
				}
			}
			return true
		})
	}
	for _, l := range lanes {
		l.starts.Ascend(int(math.Floor(ce-th)), int(math.Ceil(ce+th)), func(n *nodeRef) bool {
			if math.Abs(ce-float64(n.Key())) < th {
				for _, id := range n.Values() {
					consider(id, n.Key()-c.duration)
				}
			}
			return true
		})
	}
	return best, bestPos, best != nil
}

// commit moves c to start in lane laneIndex subject to the overlap policy.
// It returns the start actually committed and whether the move happened.
func (e *Engine) commit(c *clip, laneIndex, start int) (int, bool) {
	l := e.lanes[laneIndex]
	switch e.cfg.Overlap {
	case OverlapReject:
		if _, hit := e.collision(l, start, c.duration, c.id, nil); hit {
			return c.start, false
		}
	case OverlapResolve:
		if o, hit := e.collision(l, start, c.duration, c.id, nil); hit {
			resolved, ok := e.resolve(l, start, c.duration, c.id, o)
			if !ok {
				return c.start, false
			}
			start = resolved
		}
	}
	if laneIndex != c.lane || start != c.start {
		e.place(c, laneIndex, start)
	}
	return start, true
}

// collision returns the earliest clip span in l (or in extra) that overlaps
// [start, start+duration), ignoring the clip exclude.
func (e *Engine) collision(l *lane, start, duration int, exclude ClipID, extra []span) (span, bool) {
	end := start + duration
	var hit span
	found := false
	check := func(s span) {
		if s.overlaps(start, end) && (!found || s.start < hit.start) {
			hit, found = s, true
		}
	}
	for _, id := range l.clips {
		if id == exclude {
			continue
		}
		o := e.clips[id]
		check(span{o.start, o.end()})
	}
	for _, s := range extra {
		check(s)
	}
	return hit, found
}

// resolve tries the free edges of the colliding span o, nearest first.
func (e *Engine) resolve(l *lane, start, duration int, exclude ClipID, o span) (int, bool) {
	after := o.end
	before := o.start - duration
	options := []int{after, before}
	if abs(start-before) < abs(start-after) {
		options = []int{before, after}
	}
	for _, s := range options {
		if !e.inBounds(s, duration) {
			continue
		}
		if _, hit := e.collision(l, s, duration, exclude, nil); !hit {
			return s, true
		}
	}
	return 0, false
}

// firstFree returns the first start at or after from where a clip of the
// given duration fits in l without overlap.
func (e *Engine) firstFree(l *lane, from, duration int, exclude ClipID, extra []span) (int, bool) {
	start := max(from, 0)
	for e.inBounds(start, duration) {
		o, hit := e.collision(l, start, duration, exclude, extra)
		if !hit {
			return start, true
		}
		start = o.end
	}
	return 0, false
}

func (e *Engine) inBounds(start, duration int) bool {
	return start >= 0 && start+duration <= e.maxFrames-1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
