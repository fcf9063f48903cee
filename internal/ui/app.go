package ui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/guide/internal/crt"
	"github.com/five82/guide/internal/media"
	"github.com/five82/guide/internal/prefs"
	"github.com/five82/guide/internal/state"
	"github.com/five82/guide/internal/wiki"
)

const osVersion = "OS: HHGTTG-STABLE v42.0.6-pi"

// AppState is the root's own state: which screen is active, whether the
// terminal has booted, and the CRT calibration.
type AppState struct {
	Screen      Screen
	Started     bool
	Calibration crt.Settings
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Prefs     KV
	Records   RecordStore
	Searcher  wiki.Searcher
	Scanner   Scanner
	Player    Player
	Logger    *zap.Logger
	LogPath   string
	Demo      []media.Item
	Watch     bool
	ThemeName string
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Dependencies
	ctx      context.Context
	prefs    KV
	records  RecordStore
	searcher wiki.Searcher
	scanner  Scanner
	player   Player
	logger   *zap.Logger
	logPath  string
	demo     []media.Item
	watch    bool
	now      func() time.Time

	// UI state
	keys   keyMap
	theme  Theme
	effect crt.Effect
	state  AppState
	active screenModel
	mount  int
	width  int
	height int

	bootedAt time.Time
	frameAt  time.Time
	clock    time.Time
}

// New creates the root model. The initial screen comes from the prefs store.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	kv := opts.Prefs
	if kv == nil {
		kv = prefs.NewMemory(nil)
	}
	records := opts.Records
	if records == nil {
		records = state.NewMemory()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	demo := opts.Demo
	if len(demo) == 0 {
		demo = media.DemoItems("Welcome to the Guide.mp4", "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	screen := ScreenHome
	if v, ok := kv.Get(prefs.KeyScreen); ok {
		screen = ParseScreen(v)
	}

	theme := GetTheme(opts.ThemeName)
	return Model{
		ctx:      ctx,
		prefs:    kv,
		records:  records,
		searcher: opts.Searcher,
		scanner:  opts.Scanner,
		player:   opts.Player,
		logger:   logger,
		logPath:  opts.LogPath,
		demo:     demo,
		watch:    opts.Watch,
		now:      now,
		keys:     DefaultKeyMap(),
		theme:    theme,
		effect:   crt.NewEffect(theme.Text, theme.Background),
		state: AppState{
			Screen:      screen,
			Calibration: crt.Load(kv),
		},
		clock: now(),
	}
}

// State returns a copy of the root state.
func (m Model) State() AppState {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if mm, ok := msg.(mountedMsg); ok && mm.mountID() != m.mount {
		if d, ok := msg.(discarder); ok {
			d.discard()
		}
		m.logger.Debug("dropping result for unmounted screen", zap.Int("mount", mm.mountID()), zap.Int("current", m.mount))
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.forward(m.contentSize())

	case frameMsg:
		m.frameAt = time.Time(msg)
		return m, frameCmd()

	case clockMsg:
		m.clock = time.Time(msg)
		return m, clockCmd(m.clock)

	case calibrationMsg:
		m.state.Calibration = msg.settings
		return m, nil
	}

	return m.forward(msg)
}

// forward hands msg to the active screen.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.active == nil {
		return m, nil
	}
	next, cmd := m.active.Update(msg, m.keys)
	m.active = next
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.unmount()
		return m, tea.Quit
	}

	if !m.state.Started {
		if key.Matches(msg, m.keys.Boot) {
			return m.boot()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Screens) && !m.capturing() {
		target, _ := screenForKey(msg.String())
		cmd := m.ChangeScreen(target)
		return m, cmd
	}

	return m.forward(msg)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.state.Started {
		return m.boot()
	}
	if msg.Y < statusBarHeight {
		return m, nil
	}
	return m.forward(clickMsg{X: msg.X, Y: msg.Y - statusBarHeight})
}

func (m Model) capturing() bool {
	c, ok := m.active.(inputCapturer)
	return ok && c.capturingInput()
}

// boot leaves the splash, requests the alternate screen and mounts the
// remembered screen.
func (m Model) boot() (tea.Model, tea.Cmd) {
	m.state.Started = true
	m.bootedAt = m.now()
	m.frameAt = m.bootedAt
	m.logger.Info("terminal booted", zap.String("screen", m.state.Screen.Module()))
	initCmd := m.remount()
	return m, tea.Batch(
		tea.EnterAltScreen,
		initCmd,
		frameCmd(),
		clockCmd(m.clock),
	)
}

// ChangeScreen switches to target. Switching to the active screen does
// nothing at all; otherwise the choice is persisted and target is mounted
// fresh.
func (m *Model) ChangeScreen(target Screen) tea.Cmd {
	if !target.Valid() || target == m.state.Screen {
		return nil
	}
	m.state.Screen = target
	if err := m.prefs.Set(prefs.KeyScreen, strconv.Itoa(int(target))); err != nil {
		m.logger.Warn("persist screen failed", zap.Error(err))
	}
	return m.remount()
}

func (m *Model) remount() tea.Cmd {
	m.unmount()
	m.mount++
	m.active = m.newScreen(m.state.Screen)
	return m.active.Init()
}

func (m *Model) unmount() {
	if d, ok := m.active.(disposer); ok {
		d.dispose()
	}
	m.active = nil
}

func (m Model) contentSize() tea.WindowSizeMsg {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	h -= statusBarHeight
	if h < 1 {
		h = 1
	}
	return tea.WindowSizeMsg{Width: w, Height: h}
}

func (m Model) newScreen(s Screen) screenModel {
	size := m.contentSize()
	e := env{
		ctx:         m.ctx,
		mount:       m.mount,
		prefs:       m.prefs,
		records:     m.records,
		searcher:    m.searcher,
		scanner:     m.scanner,
		player:      m.player,
		logger:      m.logger,
		logPath:     m.logPath,
		demo:        m.demo,
		watch:       m.watch,
		calibration: m.state.Calibration,
		width:       size.Width,
		height:      size.Height,
	}
	switch s {
	case ScreenSearch:
		return newSearchScreen(e, m.theme)
	case ScreenMedia:
		return newMediaScreen(e)
	case ScreenWarning:
		return warningScreen{}
	case ScreenSystem:
		return newSystemScreen(e)
	default:
		return newHomeScreen(m.keys)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	size := m.contentSize()
	width, height := size.Width, size.Height+statusBarHeight

	if !m.state.Started {
		return m.renderSplash(width, height)
	}

	var b strings.Builder
	b.WriteString(m.renderStatusBar(width))
	b.WriteString("\n")
	b.WriteString(m.theme.Styles().FaintText.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	if m.active != nil {
		b.WriteString(lipgloss.NewStyle().MaxWidth(width).MaxHeight(size.Height).Render(
			m.active.View(m.theme, size.Width, size.Height)))
	}

	cal := m.state.Calibration
	beam := crt.BeamRow(m.frameAt.Sub(m.bootedAt), cal.Period(), height)
	return m.effect.Apply(b.String(), cal, width, beam)
}

func (m Model) renderSplash(width, height int) string {
	styles := m.theme.Styles()
	block := lipgloss.JoinVertical(lipgloss.Center,
		styles.Text.Bold(true).Render("The Hitchhiker's Guide to the Galaxy"),
		styles.MutedText.Render("Megadodo Publications of Ursa Minor"),
		"",
		styles.WarningText.Blink(true).Render("[ SYSTEM HALTED. PRESS ENTER OR CLICK TO BOOT ]"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

func (m Model) renderStatusBar(width int) string {
	styles := m.theme.Styles()
	left := osVersion
	mid := "MOD: " + m.state.Screen.Module()
	right := m.clock.Format("15:04")

	gap := width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if gap < 2 {
		return styles.StatusBar.Width(width).Render(left + " " + mid + " " + right)
	}
	lgap := gap / 2
	return styles.StatusBar.Render(left) +
		styles.StatusBar.Render(strings.Repeat(" ", lgap)) +
		styles.StatusBar.Foreground(lipgloss.Color(m.theme.Warning)).Render(mid) +
		styles.StatusBar.Render(strings.Repeat(" ", gap-lgap)) +
		styles.StatusBar.Render(right)
}

// Messages

type frameMsg time.Time

type clockMsg time.Time

// Commands

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// clockCmd fires at the start of the next minute.
func clockCmd(now time.Time) tea.Cmd {
	next := now.Truncate(time.Minute).Add(time.Minute)
	d := next.Sub(now)
	if d <= 0 {
		d = time.Minute
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.unmount()
	}
	return err
}
