package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/guide/internal/prefs"
)

func TestNew_RestoresScreen(t *testing.T) {
	tests := []struct {
		stored string
		want   Screen
	}{
		{"3", ScreenWarning},
		{"4", ScreenSystem},
		{"0", ScreenHome},
		{"9", ScreenHome},
		{"-1", ScreenHome},
		{"media", ScreenHome},
	}
	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			m := New(Options{Prefs: prefs.NewMemory(map[string]string{prefs.KeyScreen: tt.stored})})
			if got := m.State().Screen; got != tt.want {
				t.Fatalf("Screen = %v, want %v", got, tt.want)
			}
		})
	}
	if got := New(Options{}).State().Screen; got != ScreenHome {
		t.Fatalf("Screen with empty store = %v, want Home", got)
	}
}

func TestBootGate(t *testing.T) {
	kv := prefs.NewMemory(nil)
	m := New(Options{Prefs: kv})

	m = press(t, m, "2", "x", "esc")
	if m.State().Started || m.State().Screen != ScreenHome || kv.Writes() != 0 {
		t.Fatalf("keys before boot changed state: %+v, writes %d", m.State(), kv.Writes())
	}
	if !strings.Contains(m.View(), "PRESS ENTER OR CLICK TO BOOT") {
		t.Fatalf("splash not shown before boot")
	}

	m, cmd := updateModel(t, m, keyPress("enter"))
	if !m.State().Started {
		t.Fatalf("enter did not boot")
	}
	if cmd == nil {
		t.Fatalf("boot returned no command")
	}
	if m.active == nil {
		t.Fatalf("no screen mounted after boot")
	}
}

func TestBootGate_Click(t *testing.T) {
	m := New(Options{})
	m, _ = updateModel(t, m, tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.State().Started {
		t.Fatalf("release booted the terminal")
	}
	m, _ = updateModel(t, m, tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.State().Started {
		t.Fatalf("left click did not boot")
	}
}

func TestQuit(t *testing.T) {
	for _, started := range []bool{false, true} {
		m := New(Options{})
		if started {
			m = booted(t, Options{})
		}
		_, cmd := updateModel(t, m, keyPress("ctrl+c"))
		if cmd == nil {
			t.Fatalf("ctrl+c returned no command (started=%v)", started)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("ctrl+c did not quit (started=%v)", started)
		}
	}
}

func TestChangeScreen_SameScreenIsNoop(t *testing.T) {
	kv := prefs.NewMemory(map[string]string{prefs.KeyScreen: "1"})
	m := booted(t, Options{Prefs: kv})
	mount, active := m.mount, m.active

	if cmd := m.ChangeScreen(ScreenSearch); cmd != nil {
		t.Fatalf("ChangeScreen to the active screen returned a command")
	}
	if kv.Writes() != 0 {
		t.Fatalf("ChangeScreen to the active screen wrote %d times", kv.Writes())
	}
	if m.mount != mount || m.active != active {
		t.Fatalf("ChangeScreen to the active screen re-mounted it")
	}

	m.ChangeScreen(ScreenSystem)
	if m.State().Screen != ScreenSystem || m.mount != mount+1 {
		t.Fatalf("ChangeScreen(System) = %+v mount %d", m.State(), m.mount)
	}
	if v, _ := kv.Get(prefs.KeyScreen); v != "4" || kv.Writes() != 1 {
		t.Fatalf("persisted screen = %q after %d writes, want 4 after 1", v, kv.Writes())
	}
}

func TestDigitNavigation_FromEveryScreen(t *testing.T) {
	digits := map[string]Screen{"1": ScreenHome, "2": ScreenSearch, "3": ScreenMedia, "4": ScreenWarning, "5": ScreenSystem}
	for start := ScreenHome; start <= ScreenSystem; start++ {
		for digit, target := range digits {
			kv := prefs.NewMemory(map[string]string{prefs.KeyScreen: string(rune('0' + int(start)))})
			m := booted(t, Options{Prefs: kv, Scanner: &fakeScanner{}})
			m = press(t, m, digit)
			if got := m.State().Screen; got != target {
				t.Fatalf("from %v digit %s: screen = %v, want %v", start, digit, got, target)
			}
			wantWrites := 1
			if start == target {
				wantWrites = 0
			}
			if kv.Writes() != wantWrites {
				t.Fatalf("from %v digit %s: %d writes, want %d", start, digit, kv.Writes(), wantWrites)
			}
		}
	}
}

func TestDigitNavigation_NeverReachesScreen(t *testing.T) {
	kv := prefs.NewMemory(map[string]string{prefs.KeyScreen: "1"})
	m := booted(t, Options{Prefs: kv})

	m = press(t, m, "2", "1")
	if m.State().Screen != ScreenHome {
		t.Fatalf("screen = %v, want Home", m.State().Screen)
	}
	m = press(t, m, "2", "7", "5")
	if m.State().Screen != ScreenSystem {
		t.Fatalf("screen = %v, want System", m.State().Screen)
	}
	m = press(t, m, "2")
	s := m.active.(*searchScreen)
	if s.query != "7" {
		t.Fatalf("query = %q, want only the non-navigation digit", s.query)
	}
}

func TestStatusBar(t *testing.T) {
	kv := prefs.NewMemory(map[string]string{prefs.KeyScreen: "2"})
	m := booted(t, Options{Prefs: kv})
	view := m.View()
	for _, want := range []string{"HHGTTG-STABLE v42.0.6-pi", "MOD: MEDIA_VAULT", "VIRTUAL DRIVE"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestStaleResultForUnmountedScreenIsDropped(t *testing.T) {
	searcher := &fakeSearcher{}
	kv := prefs.NewMemory(map[string]string{prefs.KeyScreen: "1", prefs.KeyQuery: "ARTHUR"})
	m := booted(t, Options{Prefs: kv, Searcher: searcher})

	first := m.active.(*searchScreen)
	cmd := first.search()
	msgs := drain(cmd)

	m = press(t, m, "1", "2")
	for _, msg := range msgs {
		m, _ = updateModel(t, m, msg)
	}
	s := m.active.(*searchScreen)
	if s == first {
		t.Fatalf("search screen was not re-mounted")
	}
	if s.article != nil || s.phase != phaseIdle {
		t.Fatalf("stale result reached the new screen: phase %v", s.phase)
	}
}

func TestCalibrationReachesRoot(t *testing.T) {
	kv := prefs.NewMemory(map[string]string{prefs.KeyScreen: "4"})
	m := booted(t, Options{Prefs: kv})

	m, cmd := updateModel(t, m, keyPress("right"))
	for _, msg := range drain(cmd) {
		m, _ = updateModel(t, m, msg)
	}
	if got := m.State().Calibration.Intensity; got != 0.16 {
		t.Fatalf("root intensity = %v, want 0.16", got)
	}
	if v, _ := kv.Get(prefs.KeyCRTIntensity); v != "0.16" {
		t.Fatalf("persisted intensity = %q, want 0.16", v)
	}
}

func TestView_AppliesScanlines(t *testing.T) {
	m := booted(t, Options{})
	lines := strings.Split(m.View(), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[1], "\x1b[48;2;") {
		t.Fatalf("second line is not a scanline")
	}
}

func TestDigitNavigation_PathPromptOwnsDigits(t *testing.T) {
	kv := prefs.NewMemory(map[string]string{prefs.KeyScreen: "2"})
	m := booted(t, Options{Prefs: kv})

	m = press(t, m, "n", "1")
	if m.State().Screen != ScreenMedia {
		t.Fatalf("digit left the screen while the path prompt was open")
	}
	if got := m.active.(*mediaScreen).prompt.Value(); got != "1" {
		t.Fatalf("prompt value = %q, want 1", got)
	}

	m = press(t, m, "esc", "1")
	if m.State().Screen != ScreenHome {
		t.Fatalf("screen = %v, want Home once the prompt closed", m.State().Screen)
	}
}
