package timeline

import (
	"math"
	"testing"
)

func TestSetZoomClampsToMinimum(t *testing.T) {
	// 10800px over 1,080,000 frames gives a minimum zoom of 0.01.
	e := newTestEngine(t, func(c *Config) { c.ViewportWidth = 10800 })
	if got := e.MinZoom(); math.Abs(got-0.01) > 1e-12 {
		t.Fatalf("MinZoom() = %g, want 0.01", got)
	}

	tests := []struct {
		requested float64
		want      float64
	}{
		{requested: 0.001, want: 0.01},
		{requested: 0, want: 0.01},
		{requested: -3, want: 0.01},
		{requested: math.NaN(), want: 0.01},
		{requested: 0.5, want: 0.5},
		{requested: 8, want: 8},
	}
	for _, tt := range tests {
		got := e.SetZoom(tt.requested)
		if math.Abs(got-tt.want) > 1e-12 || e.Zoom() != got {
			t.Errorf("SetZoom(%g) = %g (Zoom() = %g), want %g", tt.requested, got, e.Zoom(), tt.want)
		}
	}
}

func TestZoomInOut(t *testing.T) {
	e := newTestEngine(t, nil)
	e.SetZoom(1)
	if got := e.ZoomIn(); got != 2 {
		t.Errorf("ZoomIn() = %g, want 2", got)
	}
	if got := e.ZoomOut(); got != 1 {
		t.Errorf("ZoomOut() = %g, want 1", got)
	}
	e.SetZoom(e.MinZoom())
	if got := e.ZoomOut(); got != e.MinZoom() {
		t.Errorf("ZoomOut() at minimum = %g, want %g", got, e.MinZoom())
	}
}

func TestSetViewportWidthRaisesMinimum(t *testing.T) {
	e := newTestEngine(t, func(c *Config) { c.ViewportWidth = 10800 })
	e.SetZoom(0.01)

	if err := e.SetViewportWidth(21600); err != nil {
		t.Fatalf("SetViewportWidth() error = %v", err)
	}
	if math.Abs(e.MinZoom()-0.02) > 1e-12 || math.Abs(e.Zoom()-0.02) > 1e-12 {
		t.Errorf("MinZoom() = %g, Zoom() = %g, want 0.02", e.MinZoom(), e.Zoom())
	}
	if err := e.SetViewportWidth(0); err == nil {
		t.Error("SetViewportWidth(0) error = nil")
	}
}

func TestThresholdsScaleWithZoom(t *testing.T) {
	e := newTestEngine(t, nil)
	e.SetZoom(2)
	if got := e.SnapThreshold(); got != 5 {
		t.Errorf("SnapThreshold() at zoom 2 = %g, want 5", got)
	}
	e.SetZoom(0.5)
	if got := e.UnsnapThreshold(); got != 20 {
		t.Errorf("UnsnapThreshold() at zoom 0.5 = %g, want 20", got)
	}
	if got := e.FramesToPixels(e.SnapThreshold()); got != 10 {
		t.Errorf("threshold in pixels = %g, want 10", got)
	}
}

func TestScreenFrameConversion(t *testing.T) {
	e := newTestEngine(t, nil)
	e.SetZoom(4)
	e.ScrollTo(1000)

	if got := e.ScreenToFrame(200); got != 1050 {
		t.Errorf("ScreenToFrame(200) = %g, want 1050", got)
	}
	if got := e.FrameToScreen(1050); got != 200 {
		t.Errorf("FrameToScreen(1050) = %g, want 200", got)
	}
	tr := e.Transform()
	if tr.ScaleX != 4 || tr.ScaleY != 1 || tr.TranslateX != -4000 {
		t.Errorf("Transform() = %+v", tr)
	}

	e.Scroll(-1e9)
	if e.ScrollX() != 0 {
		t.Errorf("ScrollX() after scrolling left = %g, want 0", e.ScrollX())
	}
	e.ScrollTo(1e12)
	if _, to := e.VisibleFrames(); to != float64(e.MaxFrames()) {
		t.Errorf("view end = %g, want %d", to, e.MaxFrames())
	}
}

func TestTicks(t *testing.T) {
	e := newTestEngine(t, nil)
	e.SetZoom(1)

	ticks := e.Ticks()
	want := []Tick{
		{Frame: 0, X: 0, Label: "0:00"},
		{Frame: 300, X: 300, Label: "0:10"},
		{Frame: 600, X: 600, Label: "0:20"},
		{Frame: 900, X: 900, Label: "0:30"},
	}
	if len(ticks) != len(want) {
		t.Fatalf("Ticks() = %+v, want %d ticks", ticks, len(want))
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Errorf("tick %d = %+v, want %+v", i, ticks[i], want[i])
		}
	}
}

func TestTicksStaySpaced(t *testing.T) {
	e := newTestEngine(t, nil)
	for _, z := range []float64{e.MinZoom(), 0.01, 0.3, 1, 7, 40} {
		e.SetZoom(z)
		ticks := e.Ticks()
		if len(ticks) == 0 {
			t.Fatalf("zoom %g: no ticks", z)
		}
		for i := 1; i < len(ticks); i++ {
			if gap := ticks[i].X - ticks[i-1].X; gap < e.Config().MinTickPixels-1e-9 && z > e.MinZoom() {
				t.Errorf("zoom %g: ticks %d and %d only %gpx apart", z, i-1, i, gap)
			}
		}
	}
}
