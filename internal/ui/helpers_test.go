package ui

import (
	"context"
	"os/exec"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/guide/internal/crt"
	"github.com/five82/guide/internal/media"
	"github.com/five82/guide/internal/prefs"
	"github.com/five82/guide/internal/state"
	"github.com/five82/guide/internal/wiki"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// drain runs cmd and any batched commands it expands to. Only use it for
// commands known not to sleep.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func testEnv(t *testing.T) env {
	t.Helper()
	return env{
		ctx:         context.Background(),
		mount:       1,
		prefs:       prefs.NewMemory(nil),
		records:     state.NewMemory(),
		logger:      zap.NewNop(),
		demo:        media.DemoItems("Welcome to the Guide.mp4", "https://example.com/welcome.mp4"),
		calibration: crt.Default(),
		width:       80,
		height:      22,
	}
}

func updateModel(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

// press sends a sequence of keys through the root, discarding commands.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = updateModel(t, m, keyPress(k))
	}
	return m
}

// booted returns a model that has passed the boot gate. The boot command is
// discarded because it schedules ticks.
func booted(t *testing.T, opts Options) Model {
	t.Helper()
	m := New(opts)
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = updateModel(t, m, keyPress("enter"))
	if !m.State().Started {
		t.Fatalf("model did not boot")
	}
	return m
}

type fakeSearcher struct {
	article wiki.Article
	err     error
	queries []string
}

func (f *fakeSearcher) Lookup(_ context.Context, query string) (wiki.Article, error) {
	f.queries = append(f.queries, query)
	return f.article, f.err
}

type fakeScanner struct {
	items []media.Item
	err   error
	calls int
}

func (f *fakeScanner) Scan(_ context.Context, _ media.Handle) ([]media.Item, error) {
	f.calls++
	return f.items, f.err
}

type fakePlayer struct {
	played []media.Item
}

func (f *fakePlayer) Command(item media.Item) *exec.Cmd {
	f.played = append(f.played, item)
	return exec.Command("true")
}
