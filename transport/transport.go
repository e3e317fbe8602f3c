// Package transport implements the playback transport: a single background
// worker that paces frames out of the bound source while Running, and
// synchronous single-frame steps while Paused.
package transport

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/user/splice-cli/source"
)

// ErrClosed is returned by Load after Close.
var ErrClosed = errors.New("transport: closed")

// Mode is the transport state.
type Mode int

const (
	Paused Mode = iota
	Running
)

// String returns "paused" or "running".
func (m Mode) String() string {
	if m == Running {
		return "running"
	}
	return "paused"
}

// Subscriber receives published frames. Publish is called from the worker
// goroutine and must not block.
type Subscriber interface {
	Publish(f source.Frame)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(f source.Frame)

// Publish calls fn(f).
func (fn SubscriberFunc) Publish(f source.Frame) {
	fn(f)
}

// Option configures a Transport.
type Option func(*Transport)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(t *Transport) {
		if l != nil {
			t.log = l
		}
	}
}

// Transport drives one frame source. All methods are safe for concurrent use.
//
// mu guards mode, the bound source and the busy flag. It is never held across
// a frame read: whoever reads (the worker or a step) claims busy under the
// lock, reads and publishes without it, then clears busy and broadcasts.
type Transport struct {
	mu       sync.Mutex
	cond     *sync.Cond
	mode     Mode
	src      source.Source
	busy     bool
	stopped  bool
	position int

	sub Subscriber
	log *zap.Logger

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New starts a paused transport publishing to sub. The worker runs until Close.
func New(sub Subscriber, opts ...Option) *Transport {
	t := &Transport{
		position: -1,
		sub:      sub,
		log:      zap.NewNop(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	t.cond = sync.NewCond(&t.mu)
	for _, opt := range opts {
		opt(t)
	}
	go t.run()
	return t
}

// FrameInterval returns the pause between frames at fps, rounded to whole
// milliseconds.
func FrameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(math.Round(1000/fps)) * time.Millisecond
}

func (t *Transport) run() {
	defer close(t.done)
	for {
		t.mu.Lock()
		for !t.stopped && (t.mode != Running || t.busy) {
			t.cond.Wait()
		}
		if t.stopped {
			t.mu.Unlock()
			return
		}
		src := t.src
		if src == nil {
			t.mode = Paused
			t.cond.Broadcast()
			t.mu.Unlock()
			t.log.Debug("auto-pause: no source bound")
			continue
		}
		t.busy = true
		t.mu.Unlock()

		f, err := src.ReadNext()
		if err == nil {
			t.sub.Publish(f)
		}

		t.mu.Lock()
		t.busy = false
		if err != nil {
			t.mode = Paused
		} else {
			t.position = f.Index
		}
		t.cond.Broadcast()
		t.mu.Unlock()

		if err != nil {
			t.log.Info("auto-pause: end of stream", zap.Error(err))
			continue
		}

		select {
		case <-t.stop:
			return
		case <-time.After(FrameInterval(src.Info().FPS)):
		}
	}
}

// Toggle flips between Running and Paused and returns the new mode. Pausing
// lets a read in flight finish and publish; the worker then suspends before
// requesting the next frame.
func (t *Transport) Toggle() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.mode == Running {
		t.mode = Paused
	} else {
		t.mode = Running
	}
	t.cond.Broadcast()
	t.log.Debug("toggle", zap.Stringer("mode", t.mode))
	return t.mode
}

// Pause switches to Paused if running.
func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = Paused
	t.cond.Broadcast()
}

// Mode returns the current mode.
func (t *Transport) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Position returns the index of the last published frame, or start-1 right
// after Load.
func (t *Transport) Position() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.position
}

// Info returns the bound source's metadata.
func (t *Transport) Info() (source.Info, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.src == nil {
		return source.Info{}, false
	}
	return t.src.Info(), true
}

// StepForward publishes the next frame. It reports whether a frame was
// published; it does nothing while Running or at the end of the source.
func (t *Transport) StepForward() bool {
	return t.step(source.Source.ReadNext)
}

// StepBack publishes the frame before the current one. It reports whether a
// frame was published; it does nothing while Running or at the start of the
// source.
func (t *Transport) StepBack() bool {
	return t.step(source.Source.ReadPrevious)
}

func (t *Transport) step(read func(source.Source) (source.Frame, error)) bool {
	t.mu.Lock()
	for t.busy && !t.stopped {
		t.cond.Wait()
	}
	if t.stopped || t.mode == Running || t.src == nil {
		t.mu.Unlock()
		return false
	}
	src := t.src
	t.busy = true
	t.mu.Unlock()

	f, err := read(src)
	if err == nil {
		t.sub.Publish(f)
	}

	t.mu.Lock()
	t.busy = false
	if err == nil {
		t.position = f.Index
	}
	t.cond.Broadcast()
	t.mu.Unlock()
	return err == nil
}

// Load binds src, replacing and closing any previous source. The next forward
// read returns frame start. A source with no frames, an out-of-range start or
// a failed seek is reported as source.ErrSourceUnavailable and leaves the
// current binding untouched. Load does not change the mode.
func (t *Transport) Load(src source.Source, start int) error {
	if src == nil {
		return fmt.Errorf("%w: nil source", source.ErrSourceUnavailable)
	}
	info := src.Info()
	if !info.Valid() {
		return fmt.Errorf("%w: no playable frames (%d frames at %g fps)", source.ErrSourceUnavailable, info.TotalFrames, info.FPS)
	}
	if start < 0 || start >= info.TotalFrames {
		return fmt.Errorf("%w: start frame %d outside 0..%d", source.ErrSourceUnavailable, start, info.TotalFrames-1)
	}

	t.mu.Lock()
	for t.busy && !t.stopped {
		t.cond.Wait()
	}
	if t.stopped {
		t.mu.Unlock()
		return ErrClosed
	}
	// Hold busy across the seek so neither the worker nor a step reads the
	// old source while the binding changes.
	t.busy = true
	t.mu.Unlock()

	err := src.Seek(start)
	if err != nil && !errors.Is(err, source.ErrSourceUnavailable) {
		err = fmt.Errorf("%w: %v", source.ErrSourceUnavailable, err)
	}

	t.mu.Lock()
	var old source.Source
	if err == nil {
		old = t.src
		t.src = src
		t.position = start - 1
	}
	t.busy = false
	t.cond.Broadcast()
	t.mu.Unlock()

	if err != nil {
		return err
	}
	t.log.Info("source loaded", zap.Int("start", start), zap.Int("frames", info.TotalFrames), zap.Float64("fps", info.FPS))
	if old != nil && old != src {
		if cerr := old.Close(); cerr != nil {
			t.log.Warn("close previous source", zap.Error(cerr))
		}
	}
	return nil
}

// Unload pauses and releases the bound source.
func (t *Transport) Unload() error {
	t.mu.Lock()
	for t.busy && !t.stopped {
		t.cond.Wait()
	}
	src := t.src
	t.src = nil
	t.mode = Paused
	t.position = -1
	t.cond.Broadcast()
	t.mu.Unlock()

	if src == nil {
		return nil
	}
	return src.Close()
}

// Close stops the worker, waits for it to exit and releases the bound source.
// It is safe to call more than once.
func (t *Transport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.stopped = true
		t.mode = Paused
		t.cond.Broadcast()
		t.mu.Unlock()
		close(t.stop)

		<-t.done

		t.mu.Lock()
		for t.busy {
			t.cond.Wait()
		}
		src := t.src
		t.src = nil
		t.mu.Unlock()
		if src != nil {
			err = src.Close()
		}
		t.log.Info("transport closed")
	})
	return err
}
