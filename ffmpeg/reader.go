package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"

	"github.com/user/splice-cli/source"
)

// Opener opens video files as rawvideo pipe sources.
type Opener struct {
	FFmpegPath  string
	FFprobePath string
	// MaxWidth downscales decoded frames wider than this. Zero keeps the
	// native size.
	MaxWidth int
}

// Open probes path and returns a source positioned at frame 0. No decoder is
// started until the first read.
func (o Opener) Open(path string) (source.Source, error) {
	info, err := Probe(context.Background(), o.FFprobePath, path)
	if err != nil {
		return nil, err
	}
	if !info.Valid() || info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("%w: %s: %dx%d, %d frames at %g fps", source.ErrSourceUnavailable, path, info.Width, info.Height, info.TotalFrames, info.FPS)
	}
	ffmpegPath := o.FFmpegPath
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	w, h := scaledSize(info.Width, info.Height, o.MaxWidth)
	return &Source{
		path:   path,
		ffmpeg: ffmpegPath,
		info:   info,
		width:  w,
		height: h,
	}, nil
}

// scaledSize fits width into maxWidth keeping the aspect ratio, with even
// dimensions as most pixel formats require.
func scaledSize(width, height, maxWidth int) (int, int) {
	if maxWidth <= 0 || width <= maxWidth {
		return width, height
	}
	w := maxWidth &^ 1
	h := (height * w / width) &^ 1
	return max(w, 2), max(h, 2)
}

// Source decodes a file through an `ffmpeg -f rawvideo -pix_fmt rgb24` pipe.
// Seeking restarts the pipe at the target timestamp.
type Source struct {
	path   string
	ffmpeg string
	info   source.Info
	width  int
	height int

	mu     sync.Mutex
	next   int
	cmd    *exec.Cmd
	cancel context.CancelFunc
	out    *bufio.Reader
	closed bool
}

// Info implements source.Source. Width and Height are the decoded size.
func (s *Source) Info() source.Info {
	info := s.info
	info.Width, info.Height = s.width, s.height
	return info
}

// args builds the decoder command line starting at frame start.
func (s *Source) args(start int) []string {
	args := []string{"-v", "error", "-nostdin"}
	if start > 0 {
		args = append(args, "-ss", strconv.FormatFloat(float64(start)/s.info.FPS, 'f', 6, 64))
	}
	args = append(args, "-i", s.path, "-an", "-sn")
	if s.width != s.info.Width || s.height != s.info.Height {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", s.width, s.height))
	}
	args = append(args, "-f", "rawvideo", "-pix_fmt", "rgb24", "-")
	return args
}

// Seek implements source.Source.
func (s *Source) Seek(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("%w: %s closed", source.ErrSourceUnavailable, s.path)
	}
	if index < 0 || index >= s.info.TotalFrames {
		return fmt.Errorf("%w: seek to frame %d of %d", source.ErrSourceUnavailable, index, s.info.TotalFrames)
	}
	s.stop()
	s.next = index
	return nil
}

// ReadNext implements source.Source.
func (s *Source) ReadNext() (source.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.next >= s.info.TotalFrames {
		return source.Frame{}, source.ErrEndOfStream
	}
	f, err := s.read()
	if err != nil {
		s.stop()
		return source.Frame{}, fmt.Errorf("%w: %v", source.ErrEndOfStream, err)
	}
	return f, nil
}

// ReadPrevious implements source.Source.
func (s *Source) ReadPrevious() (source.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.next-2 < 0 {
		return source.Frame{}, source.ErrBeginningOfStream
	}
	s.stop()
	s.next -= 2
	f, err := s.read()
	if err != nil {
		s.stop()
		return source.Frame{}, fmt.Errorf("%w: %v", source.ErrBeginningOfStream, err)
	}
	return f, nil
}

// read returns the frame at s.next, starting the decoder there if needed.
func (s *Source) read() (source.Frame, error) {
	if s.out == nil {
		if err := s.start(s.next); err != nil {
			return source.Frame{}, err
		}
	}
	pix := make([]byte, s.width*s.height*3)
	if _, err := io.ReadFull(s.out, pix); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = io.EOF
		}
		return source.Frame{}, err
	}
	f := source.Frame{Index: s.next, Width: s.width, Height: s.height, Channels: 3, Pix: pix}
	s.next++
	return f, nil
}

func (s *Source) start(frame int) error {
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, s.ffmpeg, s.args(frame)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	s.cmd = cmd
	s.cancel = cancel
	s.out = bufio.NewReaderSize(stdout, s.width*s.height*3)
	return nil
}

// stop kills the running decoder, if any.
func (s *Source) stop() {
	if s.cmd == nil {
		return
	}
	s.cancel()
	_ = s.cmd.Wait()
	s.cmd = nil
	s.cancel = nil
	s.out = nil
}

// Close implements source.Source.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.stop()
	return nil
}
