package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/user/splice-cli/catalog"
	"github.com/user/splice-cli/pkg/timeutil"
	"github.com/user/splice-cli/source"
	"github.com/user/splice-cli/timeline"
	"github.com/user/splice-cli/transport"
	"github.com/user/splice-cli/tui/components"
	"github.com/user/splice-cli/tui/forms"
	"github.com/user/splice-cli/tui/layout"
	"github.com/user/splice-cli/tui/styles"
)

const (
	// tickInterval is the interval for polling the frame feed.
	tickInterval = 40 * time.Millisecond
	// resultDisplayDuration is how long to show command results.
	resultDisplayDuration = 3 * time.Second
	// pixelsPerCell maps one terminal column to timeline screen pixels.
	pixelsPerCell = 8
	// scrollCells is how far the view pans per arrow key while browsing.
	scrollCells = 4
)

// tickMsg is sent on every tick interval to pick up new frames.
type tickMsg time.Time

// clearResultMsg clears the status message it was scheduled for.
type clearResultMsg struct{ seq int }

// VideoLoadedMsg reports a video loaded into the player from outside the
// editor, such as over the control socket.
type VideoLoadedMsg struct {
	VideoID int
	Start   int
}

type formKind int

const (
	formNone formKind = iota
	formAddClip
	formRemoveLane
)

// Player is the transport the editor drives.
type Player interface {
	Toggle() transport.Mode
	StepBack() bool
	StepForward() bool
	Load(src source.Source, start int) error
	Mode() transport.Mode
	Position() int
	Info() (source.Info, bool)
}

// Library is the video catalog the editor reads from.
type Library interface {
	List() []catalog.Video
	Get(id int) (catalog.Video, error)
	Open(id int) (source.Source, error)
	SetLastFrame(id, frame int) error
}

// FrameFeed yields the newest frame published by the player.
type FrameFeed interface {
	Latest() (source.Frame, bool)
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithInitialVideo loads the catalog video id into the player on start,
// resuming from its last frame.
func WithInitialVideo(id int) Option {
	return func(m *Model) { m.initial = id }
}

// Model is the Bubbletea model for the editor. It is the only writer of the
// layout engine: every mutation happens inside Update.
type Model struct {
	engine  *timeline.Engine
	player  Player
	frames  FrameFeed
	library Library
	log     *zap.Logger

	keys     keyMap
	help     help.Model
	showHelp bool
	width    int
	height   int
	quitting bool

	selected timeline.ClipID
	grabbed  bool
	// cursorY is the scene y the grabbed clip is dragged toward.
	cursorY float64

	form          *huh.Form
	formKind      formKind
	clipResult    *forms.ClipFormResult
	confirmRemove bool

	initial    int
	loaded     int
	loadedName string
	frame      source.Frame
	hasFrame   bool

	message string
	msgErr  bool
	msgSeq  int
}

// NewModel creates an editor over engine, driving player and showing frames
// from feed.
func NewModel(engine *timeline.Engine, player Player, feed FrameFeed, library Library, opts ...Option) *Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(styles.Title)
	h.Styles.ShortDesc = styles.SecondaryText
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(styles.Title).Bold(true)
	h.Styles.FullDesc = styles.PrimaryText

	m := &Model{
		engine:   engine,
		player:   player,
		frames:   feed,
		library:  library,
		log:      zap.NewNop(),
		keys:     defaultKeyMap(),
		help:     h,
		selected: timeline.NoClip,
		initial:  -1,
		loaded:   -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if clips := engine.Clips(); len(clips) > 0 {
		m.selected = clips[0].ID
	}
	return m
}

// Init loads the initial video, if any, and starts the frame ticker.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.initial >= 0 {
		if err := m.resume(m.initial); err != nil {
			cmds = append(cmds, m.flashError(err))
		}
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if tw := components.TrackWidth(msg.Width); tw > 0 {
			_ = m.engine.SetViewportWidth(float64(tw * pixelsPerCell))
		}
		return m, m.resizeForm()

	case tickMsg:
		if f, ok := m.frames.Latest(); ok {
			m.frame, m.hasFrame = f, true
		}
		return m, tickCmd()

	case clearResultMsg:
		if msg.seq == m.msgSeq {
			m.message = ""
		}
		return m, nil

	case VideoLoadedMsg:
		m.adopt(msg.VideoID)
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses the help overlay
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		m.player.Toggle()
		return m, nil
	}

	if m.grabbed {
		return m.handleGrabKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.StepBack):
		return m, m.step(m.player.StepBack)
	case key.Matches(msg, m.keys.StepForward):
		return m, m.step(m.player.StepForward)
	case key.Matches(msg, m.keys.Preview):
		return m, m.previewSelected()
	case key.Matches(msg, m.keys.NextClip):
		m.cycle(1)
	case key.Matches(msg, m.keys.PrevClip):
		m.cycle(-1)
	case key.Matches(msg, m.keys.Grab):
		return m, m.grab()
	case key.Matches(msg, m.keys.Left):
		m.engine.Scroll(-scrollCells * pixelsPerCell)
	case key.Matches(msg, m.keys.Right):
		m.engine.Scroll(scrollCells * pixelsPerCell)
	case key.Matches(msg, m.keys.NudgeLeft):
		m.engine.Scroll(-pixelsPerCell)
	case key.Matches(msg, m.keys.NudgeRight):
		m.engine.Scroll(pixelsPerCell)
	case key.Matches(msg, m.keys.ZoomIn):
		m.engine.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		m.engine.ZoomOut()
	case key.Matches(msg, m.keys.AddLane):
		l := m.engine.AddLane()
		return m, m.flash(fmt.Sprintf("added lane %d", l.Index+1))
	case key.Matches(msg, m.keys.RemoveLane):
		return m, m.requestRemoveLane()
	case key.Matches(msg, m.keys.NewClip):
		return m, m.openClipForm()
	case key.Matches(msg, m.keys.DeleteClip):
		return m, m.deleteSelected()
	}
	return m, nil
}

func (m *Model) handleGrabKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lane := m.engine.Config().LaneHeight
	switch {
	case key.Matches(msg, m.keys.Grab), key.Matches(msg, m.keys.Cancel):
		m.release()
	case key.Matches(msg, m.keys.Left):
		return m, m.drag(-pixelsPerCell, 0)
	case key.Matches(msg, m.keys.Right):
		return m, m.drag(pixelsPerCell, 0)
	case key.Matches(msg, m.keys.NudgeLeft):
		return m, m.drag(-1, 0)
	case key.Matches(msg, m.keys.NudgeRight):
		return m, m.drag(1, 0)
	case key.Matches(msg, m.keys.Up):
		return m, m.drag(0, -lane)
	case key.Matches(msg, m.keys.Down):
		return m, m.drag(0, lane)
	case key.Matches(msg, m.keys.ZoomIn):
		m.engine.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		m.engine.ZoomOut()
	}
	return m, nil
}

func (m *Model) step(fn func() bool) tea.Cmd {
	if fn() {
		return nil
	}
	if m.player.Mode() == transport.Running {
		return m.flashError(errors.New("pause playback to step"))
	}
	return nil
}

// cycle moves the selection dir clips along in creation order, wrapping.
func (m *Model) cycle(dir int) {
	clips := m.engine.Clips()
	if len(clips) == 0 {
		m.selected = timeline.NoClip
		return
	}
	next := 0
	if dir < 0 {
		next = len(clips) - 1
	}
	for i, c := range clips {
		if c.ID == m.selected {
			next = (i + dir + len(clips)) % len(clips)
			break
		}
	}
	m.selected = clips[next].ID
	m.follow(clips[next])
}

// follow scrolls the view so the clip's start is visible.
func (m *Model) follow(c timeline.Clip) {
	from, to := m.engine.VisibleFrames()
	start := float64(c.StartFrame)
	if start < from || start >= to {
		m.engine.ScrollTo(start - (to-from)/4)
	}
}

func (m *Model) grab() tea.Cmd {
	c, err := m.engine.Clip(m.selected)
	if err != nil {
		return m.flashError(errors.New("no clip selected"))
	}
	if err := m.engine.Press(c.ID); err != nil {
		return m.flashError(err)
	}
	m.grabbed = true
	m.cursorY = c.Y + m.engine.Config().LaneHeight/2
	return nil
}

func (m *Model) release() {
	if !m.grabbed {
		return
	}
	if err := m.engine.Release(m.selected); err != nil {
		m.log.Warn("release clip", zap.Int("clip", int(m.selected)), zap.Error(err))
	}
	m.grabbed = false
}

// drag moves the grabbed clip by a screen-pixel delta. Vertical moves keep
// the cursor inside the lane stack.
func (m *Model) drag(dx, dy float64) tea.Cmd {
	if dy != 0 {
		cfg := m.engine.Config()
		top := cfg.LaneOffset + cfg.LaneHeight/2
		bottom := top + float64(m.engine.LaneCount()-1)*cfg.LaneHeight
		y := math.Min(math.Max(m.cursorY+dy, top), bottom)
		dy = y - m.cursorY
		m.cursorY = y
	}
	c, err := m.engine.DragClip(m.selected, dx, dy, m.cursorY)
	if err != nil {
		m.grabbed = false
		return m.flashError(err)
	}
	m.follow(c)
	return nil
}

func (m *Model) requestRemoveLane() tea.Cmd {
	n := m.engine.LaneCount()
	last, err := m.engine.Lane(n - 1)
	if err != nil {
		return m.flashError(err)
	}
	cfg := m.engine.Config()
	if n > 1 && len(last.Clips) > 0 && cfg.LaneRemoval == timeline.RemoveDeleteClips {
		m.confirmRemove = false
		return m.openForm(formRemoveLane,
			forms.NewConfirmRemoveLaneForm(last.Index, len(last.Clips), cfg.LaneRemoval.String(), &m.confirmRemove))
	}
	return m.removeLastLane()
}

func (m *Model) removeLastLane() tea.Cmd {
	n := m.engine.LaneCount()
	if err := m.engine.RemoveLastLane(); err != nil {
		return m.flashError(err)
	}
	if _, err := m.engine.Clip(m.selected); err != nil {
		m.selected = timeline.NoClip
		m.cycle(1)
	}
	return m.flash(fmt.Sprintf("removed lane %d", n))
}

func (m *Model) deleteSelected() tea.Cmd {
	id := m.selected
	if err := m.engine.RemoveClip(id); err != nil {
		return m.flashError(errors.New("no clip selected"))
	}
	m.selected = timeline.NoClip
	m.cycle(1)
	return m.flash(fmt.Sprintf("deleted clip #%d", id))
}

func (m *Model) openClipForm() tea.Cmd {
	r := &forms.ClipFormResult{VideoID: forms.NoVideo}
	if m.loaded >= 0 {
		r.VideoID = m.loaded
	}
	if c, err := m.engine.Clip(m.selected); err == nil {
		r.Lane = c.Lane
	}
	m.clipResult = r
	return m.openForm(formAddClip, forms.NewClipForm(m.videoOptions(), m.engine.LaneCount(), r))
}

func (m *Model) openForm(kind formKind, f *huh.Form) tea.Cmd {
	m.form = f
	m.formKind = kind
	if m.width > 0 {
		m.form = m.form.WithWidth(m.width)
	}
	return tea.Batch(m.form.Init(), m.resizeForm())
}

// resizeForm passes the terminal size to the open form. A huh form renders
// its fields only after its first update, so this also lays it out.
func (m *Model) resizeForm() tea.Cmd {
	if m.form == nil || m.width == 0 {
		return nil
	}
	f, cmd := m.form.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	if f, ok := f.(*huh.Form); ok {
		m.form = f
	}
	return cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.formKind = formNone
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
		m.closeForm()
		return m, m.flash("cancelled")
	}

	f, cmd := m.form.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		kind := m.formKind
		m.closeForm()
		return m, m.finishForm(kind)
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) finishForm(kind formKind) tea.Cmd {
	switch kind {
	case formAddClip:
		return m.addClip(m.clipResult)
	case formRemoveLane:
		if m.confirmRemove {
			return m.removeLastLane()
		}
	}
	return nil
}

func (m *Model) addClip(r *forms.ClipFormResult) tea.Cmd {
	var (
		fallback float64
		opts     []timeline.ClipOption
	)
	if r.VideoID != forms.NoVideo {
		v, err := m.library.Get(r.VideoID)
		if err != nil {
			return m.flashError(err)
		}
		fallback = v.DurationSeconds
		opts = append(opts, timeline.WithVideo(v.ID))
	}
	secs, err := r.Seconds(fallback)
	if err != nil {
		return m.flashError(err)
	}
	id, err := m.engine.AddClip(r.Lane, secs, opts...)
	if err != nil {
		return m.flashError(err)
	}
	m.selected = id
	if c, err := m.engine.Clip(id); err == nil {
		m.follow(c)
	}
	return m.flash(fmt.Sprintf("added clip #%d", id))
}

func (m *Model) previewSelected() tea.Cmd {
	c, err := m.engine.Clip(m.selected)
	if err != nil {
		return m.flashError(errors.New("no clip selected"))
	}
	if c.VideoID < 0 {
		return m.flashError(fmt.Errorf("clip #%d has no video", c.ID))
	}
	if err := m.load(c.VideoID, 0); err != nil {
		return m.flashError(err)
	}
	return m.flash(fmt.Sprintf("previewing %s", m.loadedName))
}

// resume loads a video at the frame it was last left on.
func (m *Model) resume(id int) error {
	v, err := m.library.Get(id)
	if err != nil {
		return err
	}
	start := v.LastFrame
	if start < 0 || start >= v.TotalFrames {
		start = 0
	}
	return m.load(id, start)
}

func (m *Model) load(id, start int) error {
	src, err := m.library.Open(id)
	if err != nil {
		return err
	}
	m.saveLastFrame()
	if err := m.player.Load(src, start); err != nil {
		_ = src.Close()
		return err
	}
	m.adopt(id)
	return nil
}

func (m *Model) adopt(id int) {
	m.loaded = id
	m.loadedName = ""
	m.hasFrame = false
	if v, err := m.library.Get(id); err == nil {
		m.loadedName = v.Name
	}
}

// saveLastFrame records the player position against the loaded video.
func (m *Model) saveLastFrame() {
	if m.loaded < 0 {
		return
	}
	pos := m.player.Position()
	if pos < 0 {
		return
	}
	if err := m.library.SetLastFrame(m.loaded, pos); err != nil {
		m.log.Warn("save last frame", zap.Int("video", m.loaded), zap.Error(err))
	}
}

func (m *Model) quit() {
	m.release()
	m.saveLastFrame()
	m.quitting = true
}

func (m *Model) flash(msg string) tea.Cmd {
	return m.setMessage(msg, false)
}

func (m *Model) flashError(err error) tea.Cmd {
	m.log.Debug("editor action failed", zap.Error(err))
	return m.setMessage(err.Error(), true)
}

func (m *Model) setMessage(msg string, isErr bool) tea.Cmd {
	m.msgSeq++
	seq := m.msgSeq
	m.message, m.msgErr = msg, isErr
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearResultMsg{seq: seq}
	})
}

func (m *Model) mode() InteractionMode {
	switch {
	case m.form != nil:
		return ModeForm
	case m.grabbed:
		return ModeGrab
	}
	return ModeBrowse
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return components.HelpOverlay(m.help.FullHelpView(m.keys.FullHelp()), m.width, m.height)
	}

	if m.width < layout.MinTerminalWidth {
		return styles.Warning.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			styles.SecondaryText.Render(fmt.Sprintf("Minimum width: %d columns", layout.MinTerminalWidth))
	}

	status := components.StatusBar(m.statusState(), m.width)

	if m.form != nil {
		body := layout.Container{Width: m.width, Height: m.height - 1}.Render(m.form.View())
		return status + "\n" + body
	}

	lanesH := min(components.LanesHeight(m.engine.LaneCount()), m.height/2)
	mainH := max(m.height-lanesH-2, 6)

	playerW, sideW, showSide := layout.SplitColumns(m.width)
	player := components.PlayerPanel(m.playerState(), playerW, mainH)
	var main string
	if showSide {
		mode := m.mode()
		side := components.ModeIndicator(mode.String(), mode.hint(), sideW) + "\n" +
			components.ClipList(m.clipItems(), sideW, mainH-3)
		main = layout.JoinColumns([]string{player, side}, []int{playerW, sideW}, mainH)
	} else {
		main = layout.Container{Width: playerW, Height: mainH}.Render(player)
	}

	lanes := layout.Container{Width: m.width, Height: lanesH}.Render(components.Lanes(m.lanesState(), m.width))
	footer := layout.PadToWidth(m.help.ShortHelpView(m.keys.ShortHelp()), m.width)

	return strings.Join([]string{status, main, lanes, footer}, "\n")
}

func (m *Model) positionLabel() (pos, dur string, fps float64) {
	info, ok := m.player.Info()
	if !ok {
		return "--:--", "--:--", 0
	}
	return timeutil.FormatFrame(max(m.player.Position(), 0), info.FPS),
		timeutil.FormatFrame(info.TotalFrames, info.FPS),
		info.FPS
}

func (m *Model) statusState() components.StatusBarState {
	cfg := m.engine.Config()
	pos, _, _ := m.positionLabel()
	return components.StatusBarState{
		Playing:  m.player.Mode() == transport.Running,
		Position: pos,
		Zoom:     m.engine.Zoom(),
		MinZoom:  m.engine.MinZoom(),
		Lanes:    m.engine.LaneCount(),
		Clips:    len(m.engine.Clips()),
		Policies: cfg.Overlap.String() + "/" + cfg.LaneRemoval.String(),
		Message:  m.message,
		Error:    m.msgErr,
	}
}

func (m *Model) playerState() components.PlayerState {
	pos, dur, fps := m.positionLabel()
	s := components.PlayerState{
		Playing:  m.player.Mode() == transport.Running,
		Position: pos,
		Duration: dur,
		FPS:      fps,
		Frame:    m.frame,
		HasFrame: m.hasFrame,
	}
	if _, ok := m.player.Info(); ok && m.loaded >= 0 {
		s.Title = m.loadedName
	}
	return s
}

func (m *Model) videoOptions() []forms.VideoOption {
	videos := m.library.List()
	opts := make([]forms.VideoOption, len(videos))
	for i, v := range videos {
		opts[i] = forms.VideoOption{
			ID:    v.ID,
			Label: fmt.Sprintf("%s (%s)", v.Name, timeutil.FormatTime(v.DurationSeconds)),
		}
	}
	return opts
}

func (m *Model) clipItems() []components.ClipItem {
	names := make(map[int]string)
	for _, v := range m.library.List() {
		names[v.ID] = v.Name
	}
	fps := m.engine.Config().TrackFPS
	clips := m.engine.Clips()
	items := make([]components.ClipItem, len(clips))
	for i, c := range clips {
		video := "-"
		if name, ok := names[c.VideoID]; ok {
			video = name
		}
		items[i] = components.ClipItem{
			ID:       int(c.ID),
			Lane:     c.Lane,
			Start:    timeutil.FormatFrame(c.StartFrame, fps),
			Length:   timeutil.FormatClock(float64(c.DurationFrames)/fps, true),
			Video:    video,
			Snapped:  c.SnappedTo != timeline.NoClip,
			Held:     c.Held(),
			Selected: c.ID == m.selected,
		}
	}
	return items
}

func (m *Model) lanesState() components.LanesState {
	clips := m.engine.Clips()
	byID := make(map[timeline.ClipID]timeline.Clip, len(clips))
	for _, c := range clips {
		byID[c.ID] = c
	}

	rows := make([]components.LaneRow, m.engine.LaneCount())
	for _, c := range clips {
		span := components.ClipSpan{
			ID:       int(c.ID),
			From:     int(math.Floor(m.engine.FrameToScreen(float64(c.StartFrame)) / pixelsPerCell)),
			To:       int(math.Ceil(m.engine.FrameToScreen(float64(c.EndFrame())) / pixelsPerCell)),
			Selected: c.ID == m.selected,
			Held:     c.Held(),
		}
		span.To = max(span.To, span.From+1)
		if p, ok := byID[c.SnappedTo]; ok {
			span.SnapLeft = p.EndFrame() == c.StartFrame
			span.SnapRight = p.StartFrame == c.EndFrame()
		}
		if c.Lane >= 0 && c.Lane < len(rows) {
			rows[c.Lane].Spans = append(rows[c.Lane].Spans, span)
			if span.Selected {
				rows[c.Lane].Active = true
			}
		}
	}

	var marks []components.RulerMark
	for _, t := range m.engine.Ticks() {
		marks = append(marks, components.RulerMark{Col: int(t.X / pixelsPerCell), Label: t.Label})
	}

	from, _ := m.engine.VisibleFrames()
	return components.LanesState{
		Title:    "Timeline @ " + timeutil.FormatFrame(int(from), m.engine.Config().TrackFPS),
		Ruler:    marks,
		Rows:     rows,
		Playhead: m.playheadCol(clips),
	}
}

// playheadCol maps the player position onto the clip showing the loaded
// video, preferring the selected clip. It returns -1 when off screen.
func (m *Model) playheadCol(clips []timeline.Clip) int {
	info, ok := m.player.Info()
	if !ok || m.loaded < 0 {
		return -1
	}
	var host *timeline.Clip
	for i := range clips {
		if clips[i].VideoID != m.loaded {
			continue
		}
		if host == nil || clips[i].ID == m.selected {
			host = &clips[i]
		}
	}
	if host == nil {
		return -1
	}
	trackFPS := m.engine.Config().TrackFPS
	offset := int(math.Round(float64(max(m.player.Position(), 0)) / info.FPS * trackFPS))
	frame := min(host.StartFrame+offset, host.EndFrame()-1)
	x := m.engine.FrameToScreen(float64(frame))
	col := int(math.Floor(x / pixelsPerCell))
	if x < 0 || col >= components.TrackWidth(m.width) {
		return -1
	}
	return col
}

// NewProgram wraps the model in a full-screen Bubbletea program.
func NewProgram(m *Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}
