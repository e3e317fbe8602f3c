package transport

import (
	"errors"
	"testing"
	"time"

	"github.com/user/splice-cli/source"
)

type recorder struct {
	frames chan source.Frame
}

func newRecorder() *recorder {
	return &recorder{frames: make(chan source.Frame, 64)}
}

func (r *recorder) Publish(f source.Frame) {
	r.frames <- f
}

func (r *recorder) next(t *testing.T, timeout time.Duration) source.Frame {
	t.Helper()
	select {
	case f := <-r.frames:
		return f
	case <-time.After(timeout):
		t.Fatalf("no frame published within %v", timeout)
		return source.Frame{}
	}
}

func (r *recorder) expectNone(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case f := <-r.frames:
		t.Fatalf("unexpected frame %d published", f.Index)
	case <-time.After(wait):
	}
}

func memorySource(n int, fps float64) *source.Memory {
	return source.TestPattern(source.Info{TotalFrames: n, FPS: fps, Width: 2, Height: 2})
}

func waitMode(t *testing.T, tr *Transport, want Mode) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for tr.Mode() != want {
		if time.Now().After(deadline) {
			t.Fatalf("Mode() = %v, want %v", tr.Mode(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		fps  float64
		want time.Duration
	}{
		{fps: 10, want: 100 * time.Millisecond},
		{fps: 30, want: 33 * time.Millisecond},
		{fps: 29.97, want: 33 * time.Millisecond},
		{fps: 60, want: 17 * time.Millisecond},
		{fps: 0, want: 0},
	}
	for _, tt := range tests {
		if got := FrameInterval(tt.fps); got != tt.want {
			t.Errorf("FrameInterval(%g) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestPauseStopsPublishing(t *testing.T) {
	rec := newRecorder()
	tr := New(rec)
	defer tr.Close()

	if err := tr.Load(memorySource(10, 10), 0); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := tr.Toggle(); got != Running {
		t.Fatalf("Toggle() = %v, want running", got)
	}
	for want := 0; want <= 3; want++ {
		if f := rec.next(t, time.Second); f.Index != want {
			t.Fatalf("published frame %d, want %d", f.Index, want)
		}
	}
	if got := tr.Toggle(); got != Paused {
		t.Fatalf("Toggle() = %v, want paused", got)
	}
	rec.expectNone(t, 350*time.Millisecond)
	if tr.Position() != 3 {
		t.Errorf("Position() = %d, want 3", tr.Position())
	}

	tr.Toggle()
	if f := rec.next(t, time.Second); f.Index != 4 {
		t.Errorf("after resume published frame %d, want 4", f.Index)
	}
}

func TestRunToExhaustionAutoPauses(t *testing.T) {
	rec := newRecorder()
	tr := New(rec)
	defer tr.Close()

	tr.Load(memorySource(10, 10), 0)
	tr.Toggle()
	for want := 0; want < 10; want++ {
		if f := rec.next(t, time.Second); f.Index != want {
			t.Fatalf("published frame %d, want %d", f.Index, want)
		}
	}
	waitMode(t, tr, Paused)
	rec.expectNone(t, 150*time.Millisecond)
	if tr.Position() != 9 {
		t.Errorf("Position() = %d, want 9", tr.Position())
	}
}

func TestToggleWithoutSourcePauses(t *testing.T) {
	tr := New(newRecorder())
	defer tr.Close()

	tr.Toggle()
	waitMode(t, tr, Paused)
}

func TestStepForwardToEnd(t *testing.T) {
	rec := newRecorder()
	tr := New(rec)
	defer tr.Close()

	tr.Load(memorySource(10, 10), 0)
	if tr.Position() != -1 {
		t.Fatalf("Position() after Load = %d, want -1", tr.Position())
	}
	for want := 0; want < 10; want++ {
		if !tr.StepForward() {
			t.Fatalf("StepForward() #%d = false", want+1)
		}
		if f := rec.next(t, time.Second); f.Index != want {
			t.Fatalf("StepForward() published %d, want %d", f.Index, want)
		}
	}
	if tr.StepForward() {
		t.Error("StepForward() past the end = true")
	}
	rec.expectNone(t, 20*time.Millisecond)
	if tr.Position() != 9 {
		t.Errorf("Position() = %d, want 9", tr.Position())
	}
}

func TestStepBack(t *testing.T) {
	rec := newRecorder()
	tr := New(rec)
	defer tr.Close()

	tr.Load(memorySource(10, 10), 5)
	if !tr.StepForward() {
		t.Fatal("StepForward() = false")
	}
	rec.next(t, time.Second)

	for _, want := range []int{4, 3} {
		if !tr.StepBack() {
			t.Fatalf("StepBack() = false, want frame %d", want)
		}
		if f := rec.next(t, time.Second); f.Index != want {
			t.Fatalf("StepBack() published %d, want %d", f.Index, want)
		}
	}
	if !tr.StepForward() {
		t.Fatal("StepForward() after StepBack = false")
	}
	if f := rec.next(t, time.Second); f.Index != 4 {
		t.Errorf("StepForward() published %d, want 4", f.Index)
	}
}

func TestStepBackAtStart(t *testing.T) {
	rec := newRecorder()
	tr := New(rec)
	defer tr.Close()

	tr.Load(memorySource(10, 10), 0)
	tr.StepForward()
	rec.next(t, time.Second)
	if tr.StepBack() {
		t.Error("StepBack() at frame 0 = true")
	}
	rec.expectNone(t, 20*time.Millisecond)
	if tr.Position() != 0 {
		t.Errorf("Position() = %d, want 0", tr.Position())
	}
}

func TestStepIsNoOpWhileRunning(t *testing.T) {
	rec := newRecorder()
	tr := New(rec)
	defer tr.Close()

	// One frame per second keeps the worker sleeping during the steps.
	tr.Load(memorySource(10, 1), 0)
	tr.Toggle()
	rec.next(t, time.Second)

	if tr.StepForward() || tr.StepBack() {
		t.Error("step while running published a frame")
	}
	rec.expectNone(t, 100*time.Millisecond)
}

func TestStepWithoutSource(t *testing.T) {
	tr := New(newRecorder())
	defer tr.Close()
	if tr.StepForward() || tr.StepBack() {
		t.Error("step without a source = true")
	}
}

func TestLoadRejectsUnavailableSources(t *testing.T) {
	closed := memorySource(10, 10)
	closed.Close()

	tests := []struct {
		name  string
		src   source.Source
		start int
	}{
		{name: "nil", src: nil},
		{name: "empty", src: source.NewMemory(nil, 10)},
		{name: "no fps", src: memorySource(10, 0)},
		{name: "start past end", src: memorySource(10, 10), start: 10},
		{name: "negative start", src: memorySource(10, 10), start: -1},
		{name: "closed", src: closed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(newRecorder())
			defer tr.Close()
			err := tr.Load(tt.src, tt.start)
			if !errors.Is(err, source.ErrSourceUnavailable) {
				t.Fatalf("Load() error = %v, want ErrSourceUnavailable", err)
			}
			if _, ok := tr.Info(); ok {
				t.Error("failed Load() bound a source")
			}
		})
	}
}

func TestLoadReplacesAndClosesPrevious(t *testing.T) {
	rec := newRecorder()
	tr := New(rec)
	defer tr.Close()

	first := memorySource(10, 10)
	second := memorySource(3, 25)
	tr.Load(first, 0)
	if err := tr.Load(second, 2); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := first.Seek(0); !errors.Is(err, source.ErrSourceUnavailable) {
		t.Errorf("previous source still open: Seek() = %v", err)
	}
	if info, ok := tr.Info(); !ok || info.TotalFrames != 3 {
		t.Errorf("Info() = %+v, %v", info, ok)
	}
	tr.StepForward()
	if f := rec.next(t, time.Second); f.Index != 2 {
		t.Errorf("published %d, want 2", f.Index)
	}
}

func TestUnload(t *testing.T) {
	tr := New(newRecorder())
	defer tr.Close()

	src := memorySource(10, 10)
	tr.Load(src, 0)
	if err := tr.Unload(); err != nil {
		t.Fatalf("Unload() error = %v", err)
	}
	if _, ok := tr.Info(); ok {
		t.Error("Info() ok after Unload")
	}
	if err := src.Seek(0); err == nil {
		t.Error("source not closed by Unload")
	}
}

func TestCloseStopsWorker(t *testing.T) {
	rec := newRecorder()
	tr := New(rec)

	src := memorySource(100, 1)
	tr.Load(src, 0)
	tr.Toggle()
	rec.next(t, time.Second)

	done := make(chan struct{})
	go func() {
		tr.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close() did not return while the worker was sleeping")
	}
	select {
	case <-tr.done:
	default:
		t.Fatal("worker still running after Close()")
	}
	if err := src.Seek(0); err == nil {
		t.Error("source not closed by Close")
	}
	if err := tr.Load(memorySource(1, 1), 0); !errors.Is(err, ErrClosed) {
		t.Errorf("Load() after Close = %v, want ErrClosed", err)
	}
	if err := tr.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
