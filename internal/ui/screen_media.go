package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/five82/guide/internal/media"
	"github.com/five82/guide/internal/prefs"
	"github.com/five82/guide/internal/state"
)

const virtualDrive = "VIRTUAL DRIVE"

// handleRestoredMsg carries the remembered directory read on mount.
type handleRestoredMsg struct {
	mounted
	handle media.Handle
	found  bool
}

// scanDoneMsg is the outcome of one directory scan.
type scanDoneMsg struct {
	mounted
	handle  media.Handle
	granted bool
	restore bool
	items   []media.Item
	err     error
}

type watchStartedMsg struct {
	mounted
	path    string
	watcher *media.Watcher
}

type dirChangedMsg struct {
	mounted
	watcher *media.Watcher
}

type watchErrorMsg struct {
	mounted
	watcher *media.Watcher
	err     error
}

type mediaScreen struct {
	env
	items     []media.Item
	selected  int
	handle    media.Handle
	syncing   bool
	notice    string
	prompting bool
	prompt    textinput.Model
	overlay   *playerOverlay
	playSeq   int
	watcher   *media.Watcher
}

func newMediaScreen(e env) *mediaScreen {
	s := &mediaScreen{env: e}
	s.items = append([]media.Item(nil), e.demo...)
	if v, ok := e.prefs.Get(prefs.KeyMediaIndex); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			s.selected = n
		}
	}
	s.clampSelection()

	s.prompt = textinput.New()
	s.prompt.Prompt = "PATH> "
	s.prompt.Placeholder = "/media/usb"
	s.prompt.CharLimit = 4096
	return s
}

func (s *mediaScreen) Init() tea.Cmd {
	return s.restoreCmd()
}

func (s *mediaScreen) tag() mounted {
	return mounted{mount: s.mount}
}

func (s *mediaScreen) capturingInput() bool {
	return s.prompting || (s.overlay != nil && !s.overlay.booting)
}

func (s *mediaScreen) dispose() {
	if s.watcher != nil {
		_ = s.watcher.Close()
		s.watcher = nil
	}
}

func (s *mediaScreen) Update(msg tea.Msg, keys keyMap) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		return s, nil

	case handleRestoredMsg:
		if !msg.found || !msg.handle.Valid() {
			return s, nil
		}
		return s, s.scan(msg.handle, true)

	case scanDoneMsg:
		return s, s.applyScan(msg)

	case watchStartedMsg:
		// Only a watcher for the directory on screen is kept.
		if s.watcher != nil || msg.path != s.handle.Path {
			_ = msg.watcher.Close()
			return s, nil
		}
		s.watcher = msg.watcher
		return s, waitForChange(s.tag(), s.watcher)

	case watchErrorMsg:
		if s.watcher == nil || msg.watcher != s.watcher {
			return s, nil
		}
		s.logger.Warn("directory watch error", zap.String("dir", s.watcher.Path()), zap.Error(msg.err))
		return s, waitForChange(s.tag(), s.watcher)

	case dirChangedMsg:
		if s.watcher == nil || msg.watcher != s.watcher {
			return s, nil
		}
		cmds := []tea.Cmd{waitForChange(s.tag(), s.watcher)}
		if !s.syncing && s.handle.Valid() {
			cmds = append(cmds, s.startScan(s.handle))
		}
		return s, tea.Batch(cmds...)

	case splashDoneMsg:
		if s.overlay == nil || msg.seq != s.overlay.seq {
			return s, nil
		}
		if s.player == nil {
			s.overlay = nil
			s.notice = "PLAYBACK FAILED: no player configured"
			return s, nil
		}
		s.overlay.booting = false
		return s, playCmd(s.player, s.tag(), s.overlay)

	case playerExitedMsg:
		if s.overlay == nil || msg.seq != s.overlay.seq {
			return s, nil
		}
		s.overlay = nil
		if msg.err != nil {
			s.notice = "PLAYBACK FAILED: " + msg.err.Error()
			s.logger.Warn("player exited with error", zap.Error(msg.err))
		}
		return s, nil

	case tea.KeyMsg:
		return s, s.handleKey(msg, keys)
	}

	if s.prompting {
		var cmd tea.Cmd
		s.prompt, cmd = s.prompt.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *mediaScreen) handleKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	if s.overlay != nil {
		if s.overlay.booting && key.Matches(msg, keys.StopVideo) {
			s.overlay = nil
		}
		return nil
	}
	if s.prompting {
		return s.handlePromptKey(msg, keys)
	}
	if s.syncing {
		return nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		s.step(-1)
	case key.Matches(msg, keys.Down):
		s.step(1)
	case key.Matches(msg, keys.Confirm):
		return s.play()
	case key.Matches(msg, keys.Rescan):
		s.prompting = true
		s.prompt.SetValue(s.handle.Path)
		s.prompt.CursorEnd()
		return s.prompt.Focus()
	}
	return nil
}

func (s *mediaScreen) handlePromptKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		s.closePrompt()
		return nil
	case key.Matches(msg, keys.Confirm):
		value := s.prompt.Value()
		s.closePrompt()
		h, err := media.NewHandle(value)
		if err != nil {
			s.notice = "SYNC FAILED: " + err.Error()
			return nil
		}
		return s.startScan(h)
	}
	var cmd tea.Cmd
	s.prompt, cmd = s.prompt.Update(msg)
	return cmd
}

func (s *mediaScreen) closePrompt() {
	s.prompting = false
	s.prompt.Blur()
	s.prompt.Reset()
}

// step moves the selection with wrap-around and persists it.
func (s *mediaScreen) step(delta int) {
	n := len(s.items)
	if n == 0 {
		return
	}
	s.selected = ((s.selected+delta)%n + n) % n
	s.persist(prefs.KeyMediaIndex, strconv.Itoa(s.selected))
}

func (s *mediaScreen) clampSelection() {
	switch {
	case len(s.items) == 0:
		s.selected = 0
	case s.selected < 0:
		s.selected = 0
	case s.selected >= len(s.items):
		s.selected = len(s.items) - 1
	}
}

func (s *mediaScreen) play() tea.Cmd {
	if s.selected < 0 || s.selected >= len(s.items) {
		return nil
	}
	s.playSeq++
	s.notice = ""
	s.overlay = newPlayerOverlay(s.items[s.selected], s.playSeq)
	return splashCmd(s.tag(), s.playSeq)
}

func (s *mediaScreen) restoreCmd() tea.Cmd {
	records, parent, tag, logger := s.records, s.ctx, s.tag(), s.logger
	return func() tea.Msg {
		if records == nil {
			return handleRestoredMsg{mounted: tag}
		}
		ctx, cancel := context.WithTimeout(parent, storageTimeout)
		defer cancel()
		var h media.Handle
		found, err := records.Get(ctx, state.KeyDirHandle, &h)
		if err != nil {
			logger.Debug("restore directory handle failed", zap.Error(err))
			return handleRestoredMsg{mounted: tag}
		}
		return handleRestoredMsg{mounted: tag, handle: h, found: found}
	}
}

// startScan marks the screen as syncing and scans h in the background. The
// handle is persisted once permission is granted.
func (s *mediaScreen) startScan(h media.Handle) tea.Cmd {
	return s.scan(h, false)
}

// scan runs one directory scan. A restore scan fails silently.
func (s *mediaScreen) scan(h media.Handle, restore bool) tea.Cmd {
	s.syncing = true
	s.notice = ""
	scanner, records, parent, tag, logger := s.scanner, s.records, s.ctx, s.tag(), s.logger
	return func() tea.Msg {
		if scanner == nil {
			return scanDoneMsg{mounted: tag, handle: h, restore: restore, err: errors.New("no scanner configured")}
		}
		if err := h.RequestPermission(); err != nil {
			return scanDoneMsg{mounted: tag, handle: h, restore: restore, err: err}
		}
		if records != nil {
			ctx, cancel := context.WithTimeout(parent, storageTimeout)
			if err := records.Put(ctx, state.KeyDirHandle, h); err != nil {
				logger.Warn("persist directory handle failed", zap.Error(err))
			}
			cancel()
		}
		items, err := scanner.Scan(parent, h)
		return scanDoneMsg{mounted: tag, handle: h, granted: true, restore: restore, items: items, err: err}
	}
}

func (s *mediaScreen) applyScan(msg scanDoneMsg) tea.Cmd {
	s.syncing = false
	if msg.granted {
		s.handle = msg.handle
	}
	if msg.err != nil && msg.restore {
		s.logger.Debug("restore scan failed", zap.String("dir", msg.handle.Path), zap.Error(msg.err))
		return nil
	}
	if msg.err != nil {
		s.notice = "SYNC FAILED: " + msg.err.Error()
		s.logger.Warn("directory scan failed", zap.String("dir", msg.handle.Path), zap.Error(msg.err))
		return nil
	}
	s.logger.Info("directory scanned", zap.String("dir", msg.handle.Path), zap.Int("videos", len(msg.items)))
	// An empty scan keeps whatever list is showing.
	if len(msg.items) > 0 {
		s.items = msg.items
		s.clampSelection()
	}
	if !s.watch {
		return nil
	}
	if s.watcher != nil && s.watcher.Path() == msg.handle.Path {
		return nil
	}
	s.dispose()
	return startWatchCmd(s.ctx, s.tag(), msg.handle, s.logger)
}

func startWatchCmd(ctx context.Context, tag mounted, h media.Handle, logger *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		w, err := media.Watch(ctx, h, 0)
		if err != nil {
			logger.Warn("watch directory failed", zap.String("dir", h.Path), zap.Error(err))
			return nil
		}
		return watchStartedMsg{mounted: tag, path: h.Path, watcher: w}
	}
}

func waitForChange(tag mounted, w *media.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.Changes():
			return dirChangedMsg{mounted: tag, watcher: w}
		case err := <-w.Errors():
			return watchErrorMsg{mounted: tag, watcher: w, err: err}
		case <-w.Done():
			return nil
		}
	}
}

func (s *mediaScreen) View(theme Theme, width, height int) string {
	if s.overlay != nil {
		return s.overlay.view(theme, width, height)
	}
	styles := theme.Styles()
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	name := s.handle.Name
	if name == "" {
		name = virtualDrive
	}
	hint := "[ 'N' FOR NEW SCAN ]"
	gap := inner - runewidth.StringWidth(name) - runewidth.StringWidth(hint)
	if gap < 1 {
		gap = 1
	}
	header := styles.Text.Bold(true).Render(name) + strings.Repeat(" ", gap) + styles.FaintText.Render(hint)

	rows := height - 6
	if rows < 1 {
		rows = 1
	}
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}

	lines := []string{header, styles.FaintText.Render(strings.Repeat("─", inner))}
	for i := start; i < len(s.items) && i < start+rows; i++ {
		lines = append(lines, s.renderItem(styles, i, inner))
	}

	switch {
	case s.prompting:
		lines = append(lines, "", s.prompt.View())
	case s.syncing:
		lines = append(lines, "", styles.AccentText.Render("SYNCING..."))
	case s.notice != "":
		lines = append(lines, "", styles.DangerText.Render(s.notice))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (s *mediaScreen) renderItem(styles Styles, i, width int) string {
	item := s.items[i]
	meta := fmt.Sprintf("[%s]", item.Format)
	titleWidth := width - runewidth.StringWidth(meta) - 3
	if titleWidth < 4 {
		titleWidth = 4
	}
	title := runewidth.Truncate(item.Title, titleWidth, "...")
	line := runewidth.FillRight(title, titleWidth) + " " + meta
	if i == s.selected {
		return styles.Selected.Render("> " + line)
	}
	return styles.Text.Render("  " + line)
}

// discard closes a watcher that arrived after its screen was unmounted.
func (m watchStartedMsg) discard() {
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
}
