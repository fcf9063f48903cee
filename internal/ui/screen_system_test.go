package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/guide/internal/crt"
	"github.com/five82/guide/internal/media"
	"github.com/five82/guide/internal/prefs"
	"github.com/five82/guide/internal/state"
)

func mountSystem(t *testing.T, e env) *systemScreen {
	t.Helper()
	s := newSystemScreen(e)
	for _, msg := range drain(s.Init()) {
		s.Update(msg, DefaultKeyMap())
	}
	return s
}

func TestSystem_LastSyncDir(t *testing.T) {
	e := testEnv(t)
	s := mountSystem(t, e)
	if !strings.Contains(s.View(GetTheme(""), 120, 40), "LAST_SYNC_DIR: Not set") {
		t.Fatalf("fresh store should report Not set")
	}

	h := media.Handle{Path: "/media/films", Name: "films"}
	if err := e.records.Put(context.Background(), state.KeyDirHandle, h); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s = mountSystem(t, e)
	if !strings.Contains(s.View(GetTheme(""), 120, 40), "LAST_SYNC_DIR: films") {
		t.Fatalf("view does not show the remembered directory")
	}
}

func TestSystem_LogTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.log")
	line := `{"level":"info","ts":"2026-10-14T09:15:42.123Z","msg":"directory scanned","videos":2}` + "\n"
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	e := testEnv(t)
	e.logPath = path

	view := mountSystem(t, e).View(GetTheme(""), 120, 40)
	for _, want := range []string{"$ tail guide.log", "INFO directory scanned videos=2"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSystem_AdjustPersists(t *testing.T) {
	e := testEnv(t)
	store := prefs.NewMemory(nil)
	e.prefs = store
	s := mountSystem(t, e)
	keys := DefaultKeyMap()

	_, cmd := s.Update(keyPress("right"), keys)
	msgs := drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("adjust produced %d messages, want 1", len(msgs))
	}
	cal, ok := msgs[0].(calibrationMsg)
	if !ok || cal.settings.Intensity != 0.16 {
		t.Fatalf("calibration message = %#v", msgs[0])
	}
	if v, _ := store.Get(prefs.KeyCRTIntensity); v != "0.16" {
		t.Fatalf("stored intensity = %q, want 0.16", v)
	}

	s.Update(keyPress("down"), keys)
	s.Update(keyPress("left"), keys)
	if s.cal.Speed != 9.5 {
		t.Fatalf("speed = %v, want 9.5", s.cal.Speed)
	}
	if v, _ := store.Get(prefs.KeyCRTSpeed); v != "9.5" {
		t.Fatalf("stored speed = %q, want 9.5", v)
	}

	view := s.View(GetTheme(""), 120, 40)
	for _, want := range []string{"CRT Beam Calibration", "16%", "9.5s"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestSystem_AdjustAtBoundIsNoop(t *testing.T) {
	e := testEnv(t)
	store := prefs.NewMemory(nil)
	e.prefs = store
	e.calibration = crt.Settings{Intensity: crt.MaxIntensity, Speed: crt.MinSpeed}
	s := mountSystem(t, e)
	keys := DefaultKeyMap()

	if _, cmd := s.Update(keyPress("right"), keys); cmd != nil {
		t.Fatalf("adjust past the maximum returned a command")
	}
	s.Update(keyPress("up"), keys)
	if _, cmd := s.Update(keyPress("left"), keys); cmd != nil {
		t.Fatalf("adjust past the minimum returned a command")
	}
	if store.Writes() != 0 {
		t.Fatalf("Writes = %d, want 0", store.Writes())
	}
}
