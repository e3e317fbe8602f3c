// Package catalog keeps the videos imported into an editing session.
//
// Videos get dense ids starting at 0 in registration order and never change
// after registration. A catalog can be backed by a Store so imports survive
// between sessions.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/user/splice-cli/source"
)

// ErrUnknownVideo is returned for ids that were never registered.
var ErrUnknownVideo = errors.New("catalog: unknown video")

// Video is a registered video.
type Video struct {
	ID              int
	Path            string
	Name            string
	TotalFrames     int
	FPS             float64
	DurationSeconds float64
	Width           int
	Height          int
	// LastFrame is the last frame shown in a previous session.
	LastFrame int
}

// Store persists registered videos.
type Store interface {
	SaveVideo(v Video) error
	LoadVideos() ([]Video, error)
	SaveLastFrame(path string, frame int) error
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithStore persists registrations to s.
func WithStore(s Store) Option {
	return func(c *Catalog) { c.store = s }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.log = l
		}
	}
}

// Catalog is safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	opener source.Opener
	store  Store
	log    *zap.Logger
	videos []Video
	byPath map[string]int
}

// New returns an empty catalog that probes videos through opener.
func New(opener source.Opener, opts ...Option) *Catalog {
	c := &Catalog{
		opener: opener,
		log:    zap.NewNop(),
		byPath: make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load registers every video held by the store, in stored order. Videos
// already in the catalog are skipped.
func (c *Catalog) Load() error {
	if c.store == nil {
		return nil
	}
	stored, err := c.store.LoadVideos()
	if err != nil {
		return fmt.Errorf("load videos: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, v := range stored {
		if _, ok := c.byPath[v.Path]; ok {
			continue
		}
		c.add(v)
	}
	c.log.Debug("catalog loaded", zap.Int("videos", len(c.videos)))
	return nil
}

// Register probes the video at path and records it. Registering a path twice
// returns the existing entry. The probe handle is closed before returning.
// When the store rejects the video it is not added to the catalog either.
func (c *Catalog) Register(path string) (Video, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Video{}, fmt.Errorf("resolve path: %w", err)
	}

	c.mu.RLock()
	id, ok := c.byPath[abs]
	var existing Video
	if ok {
		existing = c.videos[id]
	}
	c.mu.RUnlock()
	if ok {
		return existing, nil
	}

	src, err := c.opener.Open(abs)
	if err != nil {
		if !errors.Is(err, source.ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %v", source.ErrSourceUnavailable, err)
		}
		return Video{}, err
	}
	info := src.Info()
	if cerr := src.Close(); cerr != nil {
		c.log.Warn("close probe handle", zap.String("path", abs), zap.Error(cerr))
	}
	if !info.Valid() {
		return Video{}, fmt.Errorf("%w: %s has no playable frames", source.ErrSourceUnavailable, abs)
	}

	v := Video{
		Path:            abs,
		Name:            strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs)),
		TotalFrames:     info.TotalFrames,
		FPS:             info.FPS,
		DurationSeconds: info.DurationSeconds(),
		Width:           info.Width,
		Height:          info.Height,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.byPath[abs]; ok {
		return c.videos[id], nil
	}
	v = c.add(v)
	if c.store != nil {
		if err := c.store.SaveVideo(v); err != nil {
			// Nothing was recorded, so a later Register retries the save.
			c.videos = c.videos[:v.ID]
			delete(c.byPath, abs)
			return Video{}, fmt.Errorf("save video: %w", err)
		}
	}
	c.log.Info("video registered",
		zap.Int("id", v.ID),
		zap.String("path", v.Path),
		zap.Int("frames", v.TotalFrames),
		zap.Float64("fps", v.FPS),
	)
	return v, nil
}

// add assigns the next id. Callers hold mu.
func (c *Catalog) add(v Video) Video {
	v.ID = len(c.videos)
	c.videos = append(c.videos, v)
	c.byPath[v.Path] = v.ID
	return v
}

// Get returns the video with the given id.
func (c *Catalog) Get(id int) (Video, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id < 0 || id >= len(c.videos) {
		return Video{}, fmt.Errorf("%w: %d", ErrUnknownVideo, id)
	}
	return c.videos[id], nil
}

// Lookup returns the video registered for path.
func (c *Catalog) Lookup(path string) (Video, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Video{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byPath[abs]
	if !ok {
		return Video{}, false
	}
	return c.videos[id], true
}

// List returns all videos in id order.
func (c *Catalog) List() []Video {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Video, len(c.videos))
	copy(out, c.videos)
	return out
}

// Len returns the number of registered videos.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.videos)
}

// Open returns a fresh source for the video. The caller owns the handle.
func (c *Catalog) Open(id int) (source.Source, error) {
	v, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	src, err := c.opener.Open(v.Path)
	if err != nil {
		if !errors.Is(err, source.ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %v", source.ErrSourceUnavailable, err)
		}
		return nil, err
	}
	return src, nil
}

// SetLastFrame records the last frame shown for a video.
func (c *Catalog) SetLastFrame(id, frame int) error {
	c.mu.Lock()
	if id < 0 || id >= len(c.videos) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownVideo, id)
	}
	c.videos[id].LastFrame = frame
	path := c.videos[id].Path
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	if err := c.store.SaveLastFrame(path, frame); err != nil {
		return fmt.Errorf("save last frame: %w", err)
	}
	return nil
}
