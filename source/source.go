// Package source defines the frame source contract the player consumes.
//
// A Source is a decode cursor over a single video. Forward reads return frames
// in order; a failed forward read is the end-of-stream signal, not a fault.
// Callers own the handle and must Close it when done.
package source

import (
	"errors"
)

var (
	// ErrSourceUnavailable is returned when a video cannot be opened, probed or positioned.
	ErrSourceUnavailable = errors.New("source: unavailable")
	// ErrEndOfStream is returned by ReadNext after the last frame.
	ErrEndOfStream = errors.New("source: end of stream")
	// ErrBeginningOfStream is returned by ReadPrevious when no earlier frame exists.
	ErrBeginningOfStream = errors.New("source: beginning of stream")
)

// Info is the metadata of an opened video.
type Info struct {
	TotalFrames int
	FPS         float64
	Width       int
	Height      int
}

// DurationSeconds returns the video length derived from frame count and rate.
func (i Info) DurationSeconds() float64 {
	if i.FPS <= 0 {
		return 0
	}
	return float64(i.TotalFrames) / i.FPS
}

// Valid reports whether the metadata describes a playable video.
func (i Info) Valid() bool {
	return i.TotalFrames > 0 && i.FPS > 0
}

// Source is a decode cursor bound to one video.
//
// The cursor points at the next frame ReadNext will return. ReadPrevious
// returns the frame before the one most recently returned and moves the cursor
// back by one, so alternating calls walk the video frame by frame.
type Source interface {
	Info() Info
	// Seek positions the cursor so the next ReadNext returns frame index.
	Seek(index int) error
	ReadNext() (Frame, error)
	ReadPrevious() (Frame, error)
	Close() error
}

// Opener opens sources by file path.
type Opener interface {
	Open(path string) (Source, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (Source, error)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (Source, error) {
	return f(path)
}
