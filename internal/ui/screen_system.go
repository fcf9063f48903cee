package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/guide/internal/crt"
	"github.com/five82/guide/internal/logtail"
	"github.com/five82/guide/internal/media"
	"github.com/five82/guide/internal/state"
)

const notSet = "Not set"

type lastDirMsg struct {
	mounted
	name string
}

type logTailMsg struct {
	mounted
	lines []string
}

const (
	rowDepth = iota
	rowFreq
)

type systemScreen struct {
	env
	lastDir string
	logs    []string
	row     int
	cal     crt.Settings
}

func newSystemScreen(e env) *systemScreen {
	return &systemScreen{env: e, lastDir: notSet, cal: e.calibration.Clamp()}
}

func (s *systemScreen) Init() tea.Cmd {
	return tea.Batch(s.lastDirCmd(), s.logTailCmd())
}

func (s *systemScreen) lastDirCmd() tea.Cmd {
	records, parent, tag, logger := s.records, s.ctx, mounted{mount: s.mount}, s.logger
	return func() tea.Msg {
		if records == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(parent, storageTimeout)
		defer cancel()
		var h media.Handle
		found, err := records.Get(ctx, state.KeyDirHandle, &h)
		if err != nil {
			logger.Debug("read directory handle failed", zap.Error(err))
			return nil
		}
		if !found || h.Name == "" {
			return nil
		}
		return lastDirMsg{mounted: tag, name: h.Name}
	}
}

func (s *systemScreen) logTailCmd() tea.Cmd {
	path, tag := s.logPath, mounted{mount: s.mount}
	return func() tea.Msg {
		if path == "" {
			return nil
		}
		lines, err := logtail.Lines(path, logTailLines)
		if err != nil {
			return nil
		}
		return logTailMsg{mounted: tag, lines: lines}
	}
}

func (s *systemScreen) Update(msg tea.Msg, keys keyMap) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
	case lastDirMsg:
		s.lastDir = msg.name
	case logTailMsg:
		s.logs = msg.lines
	case tea.KeyMsg:
		return s, s.handleKey(msg, keys)
	}
	return s, nil
}

func (s *systemScreen) handleKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		s.row = (s.row + 1) % 2
	case key.Matches(msg, keys.Left):
		return s.adjust(-1)
	case key.Matches(msg, keys.Right):
		return s.adjust(1)
	}
	return nil
}

// adjust moves the selected calibration row by n steps, persists the result
// and hands it to the root.
func (s *systemScreen) adjust(n int) tea.Cmd {
	next := s.cal
	if s.row == rowDepth {
		next = next.AdjustIntensity(n)
	} else {
		next = next.AdjustSpeed(n)
	}
	if next == s.cal {
		return nil
	}
	s.cal = next
	if err := next.Save(s.prefs); err != nil {
		s.logger.Warn("persist calibration failed", zap.Error(err))
	}
	tag := mounted{mount: s.mount}
	return func() tea.Msg { return calibrationMsg{mounted: tag, settings: next} }
}

func (s *systemScreen) bootLog() []string {
	return []string{
		"[  0.000000] Linux version 6.1.42-guide (hitchhiker@magrathea) (gcc 12.2.0) #1 SMP PREEMPT",
		"[  0.000001] Command line: guide --kiosk",
		"[  0.420000] HHGTTG Media Driver v42 initialized",
		"[  0.500000] systemd[1]: Mounted /media/external_drive.",
		"[  1.000000] Network initialization successful. (10.42.0.42)",
		"--- PERSISTENT CONFIGURATION ---",
		"$ cat /etc/guide/media_path",
		"LAST_SYNC_DIR: " + s.lastDir,
		"$ cat /etc/guide/version",
		"BUILD_ID: magrathea-7.4.2",
		"$ uptime",
		"up 42 days, 42 minutes, 42 users, load average: 0.00, 0.01, 0.05",
		"$ df -h /",
		"Filesystem      Size  Used Avail Use% Mounted on",
		"/dev/sda1       420G   42G  378G  10% /",
	}
}

func (s *systemScreen) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var lines []string
	for _, line := range s.bootLog() {
		if strings.HasPrefix(line, "$") {
			lines = append(lines, styles.WarningText.Render(line))
			continue
		}
		lines = append(lines, styles.Text.Render(line))
	}

	if len(s.logs) > 0 {
		lines = append(lines, styles.WarningText.Render("$ tail guide.log"))
		for _, l := range s.logs {
			lines = append(lines, styles.MutedText.Render(l))
		}
	}

	lines = append(lines, "", s.renderCalibration(styles), styles.WarningText.Render("$ ")+styles.Selected.Render(" "))
	return lipgloss.NewStyle().Padding(0, 1).MaxWidth(width).MaxHeight(height).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (s *systemScreen) renderCalibration(styles Styles) string {
	depth := slider(s.cal.Intensity, crt.MinIntensity, crt.MaxIntensity)
	freq := slider(s.cal.Speed, crt.MinSpeed, crt.MaxSpeed)
	rows := []struct {
		label, bar, value string
	}{
		{"DEPTH:", depth, itoaPercent(s.cal.IntensityPercent())},
		{"FREQ: ", freq, s.cal.SpeedLabel()},
	}

	out := []string{styles.AccentText.Bold(true).Render("CRT Beam Calibration")}
	for i, r := range rows {
		marker := "  "
		label := styles.Text.Render(r.label)
		if i == s.row {
			marker = "> "
			label = styles.Selected.Render(r.label)
		}
		out = append(out, marker+label+" "+styles.Text.Render(r.bar)+" "+styles.WarningText.Render(r.value))
	}
	out = append(out, styles.FaintText.Render("[ UP/DOWN ] SELECT  [ LEFT/RIGHT ] ADJUST"))
	return styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, out...))
}

const sliderWidth = 20

func slider(v, lo, hi float64) string {
	filled := 0
	if hi > lo {
		filled = int((v-lo)/(hi-lo)*sliderWidth + 0.5)
	}
	if filled < 0 {
		filled = 0
	}
	if filled > sliderWidth {
		filled = sliderWidth
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", sliderWidth-filled) + "]"
}

func itoaPercent(n int) string {
	return strconv.Itoa(n) + "%"
}
