package source

import (
	"fmt"
	"sync"
)

// Memory is a Source over frames held in memory. It backs tests and the
// built-in test pattern.
type Memory struct {
	mu     sync.Mutex
	info   Info
	frames []Frame
	next   int
	closed bool
}

// NewMemory returns a source over frames played at fps. Frame indexes are
// rewritten to match their position.
func NewMemory(frames []Frame, fps float64) *Memory {
	m := &Memory{frames: make([]Frame, len(frames))}
	for i, f := range frames {
		f.Index = i
		m.frames[i] = f
		if i == 0 {
			m.info.Width = f.Width
			m.info.Height = f.Height
		}
	}
	m.info.TotalFrames = len(frames)
	m.info.FPS = fps
	return m
}

// TestPattern builds a source of moving colour bars sized by info.
func TestPattern(info Info) *Memory {
	frames := make([]Frame, info.TotalFrames)
	for i := range frames {
		pix := make([]byte, info.Width*info.Height*3)
		for y := 0; y < info.Height; y++ {
			for x := 0; x < info.Width; x++ {
				p := (y*info.Width + x) * 3
				shift := x + i
				pix[p] = byte(shift * 255 / max(info.Width, 1))
				pix[p+1] = byte(y * 255 / max(info.Height, 1))
				pix[p+2] = byte((i * 7) % 256)
			}
		}
		frames[i] = Frame{Width: info.Width, Height: info.Height, Channels: 3, Pix: pix}
	}
	return NewMemory(frames, info.FPS)
}

// Info returns the source metadata.
func (m *Memory) Info() Info {
	return m.info
}

// Seek positions the cursor at index.
func (m *Memory) Seek(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("%w: closed", ErrSourceUnavailable)
	}
	if index < 0 || index >= len(m.frames) {
		return fmt.Errorf("%w: seek to frame %d of %d", ErrSourceUnavailable, index, len(m.frames))
	}
	m.next = index
	return nil
}

// ReadNext returns the frame under the cursor and advances it.
func (m *Memory) ReadNext() (Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.next >= len(m.frames) {
		return Frame{}, ErrEndOfStream
	}
	f := m.frames[m.next]
	m.next++
	return f, nil
}

// ReadPrevious returns the frame before the last one returned.
func (m *Memory) ReadPrevious() (Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.next-2 < 0 {
		return Frame{}, ErrBeginningOfStream
	}
	m.next--
	return m.frames[m.next-1], nil
}

// Close releases the frames.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.frames = nil
	return nil
}
