package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/splice-cli/source"
)

type fakeOpener struct {
	infos  map[string]source.Info
	opened []*source.Memory
}

func (f *fakeOpener) Open(path string) (source.Source, error) {
	info, ok := f.infos[filepath.Base(path)]
	if !ok {
		return nil, errors.New("no such file")
	}
	m := source.TestPattern(info)
	f.opened = append(f.opened, m)
	return m, nil
}

type memStore struct {
	videos  []Video
	last    map[string]int
	saveErr error
}

func (s *memStore) SaveVideo(v Video) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.videos = append(s.videos, v)
	return nil
}

func (s *memStore) LoadVideos() ([]Video, error) {
	return s.videos, nil
}

func (s *memStore) SaveLastFrame(path string, frame int) error {
	if s.last == nil {
		s.last = make(map[string]int)
	}
	s.last[path] = frame
	return nil
}

func newOpener() *fakeOpener {
	return &fakeOpener{infos: map[string]source.Info{
		"match.mp4": {TotalFrames: 300, FPS: 30, Width: 4, Height: 2},
		"drone.mov": {TotalFrames: 50, FPS: 25, Width: 4, Height: 2},
		"empty.mp4": {TotalFrames: 0, FPS: 25, Width: 4, Height: 2},
	}}
}

func TestRegisterAssignsSequentialIDs(t *testing.T) {
	c := New(newOpener())

	tests := []struct {
		path     string
		id       int
		duration float64
	}{
		{path: "match.mp4", id: 0, duration: 10},
		{path: "drone.mov", id: 1, duration: 2},
	}
	for _, tt := range tests {
		v, err := c.Register(tt.path)
		if err != nil {
			t.Fatalf("Register(%q) error = %v", tt.path, err)
		}
		if v.ID != tt.id || v.DurationSeconds != tt.duration {
			t.Errorf("Register(%q) = id %d, %gs; want id %d, %gs", tt.path, v.ID, v.DurationSeconds, tt.id, tt.duration)
		}
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if v, _ := c.Get(1); v.Name != "drone" || v.FPS != 25 || v.TotalFrames != 50 {
		t.Errorf("Get(1) = %+v", v)
	}
}

func TestRegisterDeduplicatesPaths(t *testing.T) {
	op := newOpener()
	c := New(op)
	first, _ := c.Register("match.mp4")
	abs, _ := filepath.Abs("match.mp4")
	again, err := c.Register(abs)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if again.ID != first.ID || c.Len() != 1 {
		t.Errorf("second Register() = %+v, Len() = %d", again, c.Len())
	}
	if len(op.opened) != 1 {
		t.Errorf("opened %d handles, want 1", len(op.opened))
	}
}

func TestRegisterReleasesProbeHandle(t *testing.T) {
	op := newOpener()
	c := New(op)
	c.Register("match.mp4")
	if err := op.opened[0].Seek(0); err == nil {
		t.Error("probe handle still open after Register")
	}
}

func TestRegisterFailures(t *testing.T) {
	c := New(newOpener())
	for _, path := range []string{"missing.mp4", "empty.mp4"} {
		if _, err := c.Register(path); !errors.Is(err, source.ErrSourceUnavailable) {
			t.Errorf("Register(%q) error = %v, want ErrSourceUnavailable", path, err)
		}
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after failed registrations", c.Len())
	}
}

func TestRegisterRollsBackFailedSave(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	c := New(newOpener(), WithStore(store))

	if _, err := c.Register("drone.mov"); !errors.Is(err, store.saveErr) {
		t.Fatalf("Register() error = %v, want %v", err, store.saveErr)
	}
	if c.Len() != 0 {
		t.Fatalf("Len() = %d after failed save, want 0", c.Len())
	}
	if _, ok := c.Lookup("drone.mov"); ok {
		t.Fatal("failed registration still visible through Lookup")
	}

	store.saveErr = nil
	v, err := c.Register("drone.mov")
	if err != nil {
		t.Fatalf("retry Register() error = %v", err)
	}
	if v.ID != 0 || len(store.videos) != 1 || store.videos[0].Path != v.Path {
		t.Errorf("retry: video = %+v, stored = %+v", v, store.videos)
	}
}

func TestGetUnknown(t *testing.T) {
	c := New(newOpener())
	for _, id := range []int{-1, 0, 7} {
		if _, err := c.Get(id); !errors.Is(err, ErrUnknownVideo) {
			t.Errorf("Get(%d) error = %v, want ErrUnknownVideo", id, err)
		}
	}
	if _, err := c.Open(0); !errors.Is(err, ErrUnknownVideo) {
		t.Errorf("Open(0) error = %v, want ErrUnknownVideo", err)
	}
}

func TestOpenReturnsFreshHandle(t *testing.T) {
	op := newOpener()
	c := New(op)
	v, _ := c.Register("drone.mov")
	src, err := c.Open(v.ID)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()
	if src.Info().TotalFrames != 50 {
		t.Errorf("Info() = %+v", src.Info())
	}
	if _, err := src.ReadNext(); err != nil {
		t.Errorf("ReadNext() error = %v", err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := &memStore{}
	c := New(newOpener(), WithStore(store))
	c.Register("match.mp4")
	c.Register("drone.mov")
	if err := c.SetLastFrame(1, 42); err != nil {
		t.Fatalf("SetLastFrame() error = %v", err)
	}
	if len(store.videos) != 2 {
		t.Fatalf("store holds %d videos, want 2", len(store.videos))
	}
	wd, _ := os.Getwd()
	if got := store.last[filepath.Join(wd, "drone.mov")]; got != 42 {
		t.Errorf("stored last frame = %d, want 42", got)
	}

	reloaded := New(newOpener(), WithStore(store))
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	list := reloaded.List()
	if len(list) != 2 || list[0].Name != "match" || list[1].ID != 1 {
		t.Errorf("List() = %+v", list)
	}
	if v, ok := reloaded.Lookup("drone.mov"); !ok || v.ID != 1 {
		t.Errorf("Lookup() = %+v, %v", v, ok)
	}
}
