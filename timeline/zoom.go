package timeline

import (
	"fmt"
	"math"

	"github.com/user/splice-cli/pkg/timeutil"
)

// Transform maps scene coordinates (frames, scene y) to the screen.
// Only the horizontal axis is scaled.
type Transform struct {
	ScaleX     float64
	ScaleY     float64
	TranslateX float64
}

// Zoom returns the current horizontal scale in pixels per frame.
func (e *Engine) Zoom() float64 {
	return e.zoom
}

// MinZoom returns the smallest zoom at which the whole timeline fits the viewport.
func (e *Engine) MinZoom() float64 {
	return e.minZoom
}

// SetZoom sets the zoom to max(requested, MinZoom) and returns the zoom applied.
func (e *Engine) SetZoom(requested float64) float64 {
	defer e.enter()()
	e.setZoom(requested)
	return e.zoom
}

// ZoomIn doubles the zoom.
func (e *Engine) ZoomIn() float64 {
	return e.SetZoom(e.zoom * 2)
}

// ZoomOut halves the zoom, never below MinZoom.
func (e *Engine) ZoomOut() float64 {
	return e.SetZoom(e.zoom * 0.5)
}

func (e *Engine) setZoom(z float64) {
	if !(z > e.minZoom) {
		z = e.minZoom
	}
	// Carry active drags over to the new scale.
	for _, c := range e.clips {
		if c != nil && c.state != Idle {
			c.anchorStart += c.dragPixels / e.zoom
			c.dragPixels = 0
		}
	}
	e.zoom = z
	e.clampScroll()
}

// SetViewportWidth updates the viewport width in pixels, recomputes MinZoom
// and re-clamps the zoom.
func (e *Engine) SetViewportWidth(width float64) error {
	if width <= 0 {
		return fmt.Errorf("timeline: viewport width must be positive, got %g", width)
	}
	defer e.enter()()
	e.cfg.ViewportWidth = width
	e.minZoom = width / float64(e.maxFrames)
	e.setZoom(e.zoom)
	return nil
}

// Transform returns the current scene-to-screen transform.
func (e *Engine) Transform() Transform {
	return Transform{ScaleX: e.zoom, ScaleY: 1, TranslateX: -e.scrollX * e.zoom}
}

// Scroll pans the view by a screen-pixel delta.
func (e *Engine) Scroll(dx float64) {
	defer e.enter()()
	e.scrollX += dx / e.zoom
	e.clampScroll()
}

// ScrollTo puts frame at the left edge of the view, as far as the timeline allows.
func (e *Engine) ScrollTo(frame float64) {
	defer e.enter()()
	e.scrollX = frame
	e.clampScroll()
}

func (e *Engine) clampScroll() {
	maxScroll := float64(e.maxFrames) - e.cfg.ViewportWidth/e.zoom
	if maxScroll < 0 {
		maxScroll = 0
	}
	e.scrollX = math.Min(math.Max(e.scrollX, 0), maxScroll)
}

// ScrollX returns the frame at the left edge of the view.
func (e *Engine) ScrollX() float64 {
	return e.scrollX
}

// VisibleFrames returns the frame range covered by the viewport.
func (e *Engine) VisibleFrames() (from, to float64) {
	return e.scrollX, e.scrollX + e.cfg.ViewportWidth/e.zoom
}

// ScreenToFrame converts a viewport x to a scene frame.
func (e *Engine) ScreenToFrame(x float64) float64 {
	return e.scrollX + x/e.zoom
}

// FrameToScreen converts a scene frame to a viewport x.
func (e *Engine) FrameToScreen(frame float64) float64 {
	return (frame - e.scrollX) * e.zoom
}

// PixelsToFrames converts a horizontal screen distance to frames.
func (e *Engine) PixelsToFrames(dx float64) float64 {
	return dx / e.zoom
}

// FramesToPixels converts a frame distance to screen pixels.
func (e *Engine) FramesToPixels(frames float64) float64 {
	return frames * e.zoom
}

// SnapThreshold returns the snap distance in frames at the current zoom.
func (e *Engine) SnapThreshold() float64 {
	return e.cfg.BaseSnapPixels / e.zoom
}

// UnsnapThreshold returns the unsnap distance in frames at the current zoom.
func (e *Engine) UnsnapThreshold() float64 {
	return e.cfg.BaseUnsnapPixels / e.zoom
}

// Tick is a ruler mark.
type Tick struct {
	Frame int
	X     float64
	Label string
}

var tickSteps = []float64{0.1, 1, 10, 60, 600, 3600}

// Ticks returns ruler marks for the visible range. The step is the finest
// one that keeps marks at least MinTickPixels apart.
func (e *Engine) Ticks() []Tick {
	fps := e.cfg.TrackFPS
	minPixels := math.Max(e.cfg.MinTickPixels, 1)
	step := tickSteps[len(tickSteps)-1]
	for _, s := range tickSteps {
		if s*fps*e.zoom >= minPixels {
			step = s
			break
		}
	}
	stepFrames := step * fps
	from, to := e.VisibleFrames()

	var ticks []Tick
	for f := math.Ceil(from/stepFrames) * stepFrames; f <= to; f += stepFrames {
		seconds := f / fps
		var label string
		switch {
		case step < 1:
			label = timeutil.FormatClock(seconds, true)
		case step < 60:
			label = timeutil.FormatClock(seconds, false)
		default:
			label = timeutil.FormatHourMinute(seconds)
		}
		ticks = append(ticks, Tick{Frame: int(math.Round(f)), X: e.FrameToScreen(f), Label: label})
	}
	return ticks
}
