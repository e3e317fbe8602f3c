package tui

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/splice-cli/catalog"
	"github.com/user/splice-cli/display"
	"github.com/user/splice-cli/source"
	"github.com/user/splice-cli/timeline"
	"github.com/user/splice-cli/transport"
	"github.com/user/splice-cli/tui/forms"
)

func newTestModel(t *testing.T) (*Model, *transport.Transport, *catalog.Catalog) {
	t.Helper()
	info := source.Info{TotalFrames: 20, FPS: 10, Width: 16, Height: 9}
	lib := catalog.New(source.OpenerFunc(func(string) (source.Source, error) {
		return source.TestPattern(info), nil
	}))
	if _, err := lib.Register("clip.mp4"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	mb := display.NewMailbox(display.DefaultCapacity)
	tr := transport.New(mb)
	t.Cleanup(func() { _ = tr.Close() })

	eng, err := timeline.New(timeline.DefaultConfig())
	if err != nil {
		t.Fatalf("timeline.New: %v", err)
	}
	m := NewModel(eng, tr, mb, lib)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, tr, lib
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func mustAddClip(t *testing.T, m *Model, r forms.ClipFormResult) timeline.Clip {
	t.Helper()
	m.addClip(&r)
	if m.msgErr {
		t.Fatalf("addClip: %s", m.message)
	}
	c, err := m.engine.Clip(m.selected)
	if err != nil {
		t.Fatalf("selected clip: %v", err)
	}
	return c
}

func TestWindowSizeSetsViewport(t *testing.T) {
	m, _, _ := newTestModel(t)
	if got := m.engine.Config().ViewportWidth; got != 114*pixelsPerCell {
		t.Errorf("viewport width = %v, want %v", got, 114*pixelsPerCell)
	}
}

func TestLaneKeys(t *testing.T) {
	m, _, _ := newTestModel(t)

	press(m, "a", "a")
	if n := m.engine.LaneCount(); n != 3 {
		t.Fatalf("lanes = %d, want 3", n)
	}
	press(m, "d", "d")
	if n := m.engine.LaneCount(); n != 1 {
		t.Fatalf("lanes = %d, want 1", n)
	}
	press(m, "d")
	if !m.msgErr || !strings.Contains(m.message, "last remaining lane") {
		t.Errorf("message = %q (err %v), want last lane error", m.message, m.msgErr)
	}
}

func TestRemoveOccupiedLaneAsksFirst(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(m, "a")
	mustAddClip(t, m, forms.ClipFormResult{VideoID: forms.NoVideo, Lane: 1, Length: "5"})

	press(m, "d")
	if m.form == nil || m.formKind != formRemoveLane {
		t.Fatal("expected confirmation form")
	}
	if m.mode() != ModeForm {
		t.Errorf("mode = %v, want Form", m.mode())
	}

	press(m, "esc")
	if m.form != nil || m.engine.LaneCount() != 2 {
		t.Fatal("cancel should keep the lane")
	}

	press(m, "d")
	m.confirmRemove = true
	m.closeForm()
	m.finishForm(formRemoveLane)
	if n := m.engine.LaneCount(); n != 1 {
		t.Errorf("lanes = %d, want 1", n)
	}
	if len(m.engine.Clips()) != 0 || m.selected != timeline.NoClip {
		t.Errorf("clips = %d, selected = %d; want none", len(m.engine.Clips()), m.selected)
	}
}

func TestAddClipForm(t *testing.T) {
	m, _, _ := newTestModel(t)

	press(m, "n")
	if m.form == nil || m.formKind != formAddClip {
		t.Fatal("expected add-clip form")
	}
	view := m.View()
	for _, want := range []string{"Add Clip", "Video", "Lane"} {
		if !strings.Contains(view, want) {
			t.Errorf("form view missing %q", want)
		}
	}

	// A resize while the form is open keeps it laid out.
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if !strings.Contains(m.View(), "Add Clip") {
		t.Error("form view lost its title after resize")
	}
	press(m, "esc")
	if m.form != nil || m.message != "cancelled" {
		t.Fatalf("form = %v, message = %q", m.form, m.message)
	}

	m.clipResult = &forms.ClipFormResult{VideoID: 0, Lane: 0}
	m.finishForm(formAddClip)
	c, err := m.engine.Clip(m.selected)
	if err != nil {
		t.Fatalf("selected clip: %v", err)
	}
	// 20 frames at 10 fps is two seconds, 60 frames on a 30 fps track.
	if c.DurationFrames != 60 || c.VideoID != 0 {
		t.Errorf("clip = %+v, want 60 frames of video 0", c)
	}

	m.clipResult = &forms.ClipFormResult{VideoID: forms.NoVideo, Lane: 0}
	m.finishForm(formAddClip)
	if !m.msgErr {
		t.Error("clip without video or length should fail")
	}
}

func TestCycleSelection(t *testing.T) {
	m, _, _ := newTestModel(t)
	for range 3 {
		mustAddClip(t, m, forms.ClipFormResult{VideoID: forms.NoVideo, Length: "1"})
	}

	m.selected = 0
	var got []timeline.ClipID
	for range 4 {
		press(m, "tab")
		got = append(got, m.selected)
	}
	want := []timeline.ClipID{1, 2, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tab sequence = %v, want %v", got, want)
		}
	}
	press(m, "[", "[")
	if m.selected != 2 {
		t.Errorf("after two steps back selected = %d, want 2", m.selected)
	}
}

func TestGrabAndDrag(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(m, "a")
	mustAddClip(t, m, forms.ClipFormResult{VideoID: forms.NoVideo, Lane: 0, Length: "2"})

	press(m, "enter")
	if !m.grabbed || m.mode() != ModeGrab {
		t.Fatal("enter should grab the selected clip")
	}
	c, _ := m.engine.Clip(m.selected)
	if c.State != timeline.Pressed {
		t.Errorf("state = %v, want pressed", c.State)
	}

	press(m, "right")
	c, _ = m.engine.Clip(m.selected)
	want := int(math.Round(pixelsPerCell / m.engine.Zoom()))
	if c.StartFrame != want {
		t.Errorf("start = %d, want %d", c.StartFrame, want)
	}

	press(m, "down", "down")
	c, _ = m.engine.Clip(m.selected)
	if c.Lane != 1 {
		t.Errorf("lane = %d, want 1", c.Lane)
	}
	press(m, "up")
	c, _ = m.engine.Clip(m.selected)
	if c.Lane != 0 {
		t.Errorf("lane = %d, want 0", c.Lane)
	}

	press(m, "enter")
	c, _ = m.engine.Clip(m.selected)
	if m.grabbed || c.Held() {
		t.Error("enter should drop the clip")
	}
}

func TestDeleteClip(t *testing.T) {
	m, _, _ := newTestModel(t)
	mustAddClip(t, m, forms.ClipFormResult{VideoID: forms.NoVideo, Length: "1"})
	mustAddClip(t, m, forms.ClipFormResult{VideoID: forms.NoVideo, Length: "1"})

	press(m, "x")
	if n := len(m.engine.Clips()); n != 1 {
		t.Fatalf("clips = %d, want 1", n)
	}
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0", m.selected)
	}
}

func TestZoomKeys(t *testing.T) {
	m, _, _ := newTestModel(t)
	z := m.engine.Zoom()
	press(m, "+")
	if got := m.engine.Zoom(); got != z*2 {
		t.Errorf("zoom in = %v, want %v", got, z*2)
	}
	press(m, "-", "-")
	if got := m.engine.Zoom(); got != math.Max(z/2, m.engine.MinZoom()) {
		t.Errorf("zoom out = %v", got)
	}
}

func TestPreviewStepAndQuit(t *testing.T) {
	m, tr, lib := newTestModel(t)
	mustAddClip(t, m, forms.ClipFormResult{VideoID: 0, Lane: 0})

	press(m, "p")
	if m.msgErr {
		t.Fatalf("preview: %s", m.message)
	}
	if m.loaded != 0 || m.loadedName != "clip" {
		t.Fatalf("loaded = %d %q", m.loaded, m.loadedName)
	}
	if pos := tr.Position(); pos != -1 {
		t.Errorf("position after load = %d, want -1", pos)
	}

	press(m, ".", ".")
	if pos := tr.Position(); pos != 1 {
		t.Errorf("position = %d, want 1", pos)
	}
	press(m, ",")
	if pos := tr.Position(); pos != 0 {
		t.Errorf("position after step back = %d, want 0", pos)
	}

	m.Update(tickMsg(time.Now()))
	if !m.hasFrame {
		t.Error("tick should pick up the published frame")
	}
	if col := m.playheadCol(m.engine.Clips()); col != 0 {
		t.Errorf("playhead column = %d, want 0", col)
	}

	press(m, ".")
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil || !m.quitting {
		t.Fatal("q should quit")
	}
	v, err := lib.Get(0)
	if err != nil {
		t.Fatal(err)
	}
	if v.LastFrame != 1 {
		t.Errorf("last frame = %d, want 1", v.LastFrame)
	}
}

func TestInitResumesLastFrame(t *testing.T) {
	m, tr, lib := newTestModel(t)
	if err := lib.SetLastFrame(0, 7); err != nil {
		t.Fatal(err)
	}
	WithInitialVideo(0)(m)
	m.Init()
	if m.loaded != 0 {
		t.Fatalf("loaded = %d", m.loaded)
	}
	if pos := tr.Position(); pos != 6 {
		t.Errorf("position = %d, want 6", pos)
	}
}

func TestPreviewErrors(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(m, "p")
	if !m.msgErr {
		t.Error("preview without a selection should fail")
	}
	mustAddClip(t, m, forms.ClipFormResult{VideoID: forms.NoVideo, Length: "1"})
	press(m, "p")
	if !m.msgErr || !strings.Contains(m.message, "no video") {
		t.Errorf("message = %q", m.message)
	}
}

func TestVideoLoadedMsg(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(VideoLoadedMsg{VideoID: 0, Start: 3})
	if m.loaded != 0 || m.loadedName != "clip" {
		t.Errorf("loaded = %d %q", m.loaded, m.loadedName)
	}
}

func TestClearResultMsg(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.flash("one")
	stale := m.msgSeq
	m.flashError(errors.New("two"))
	m.Update(clearResultMsg{seq: stale})
	if m.message != "two" {
		t.Errorf("stale clear removed message, got %q", m.message)
	}
	m.Update(clearResultMsg{seq: m.msgSeq})
	if m.message != "" {
		t.Errorf("message = %q, want empty", m.message)
	}
}

func TestView(t *testing.T) {
	m, _, _ := newTestModel(t)
	mustAddClip(t, m, forms.ClipFormResult{VideoID: 0})

	out := m.View()
	if lines := strings.Count(out, "\n") + 1; lines != 40 {
		t.Errorf("view has %d lines, want 40", lines)
	}
	for _, want := range []string{"Timeline", "Clips (1)", "#0", "Browse"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	press(m, "?")
	if !strings.Contains(m.View(), "Keybindings") {
		t.Error("help overlay not shown")
	}
	press(m, "z")
	if m.showHelp {
		t.Error("any key should close help")
	}

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(m.View(), "too narrow") {
		t.Error("expected narrow terminal warning")
	}
}
