package crt

import (
	"strings"
	"testing"
	"time"

	"github.com/five82/guide/internal/prefs"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{"defaults", Default(), Settings{Intensity: 0.15, Speed: 10}},
		{"above range", Settings{Intensity: 5, Speed: 99}, Settings{Intensity: 0.8, Speed: 30}},
		{"below range", Settings{Intensity: -1, Speed: 0}, Settings{Intensity: 0, Speed: 1}},
		{"snaps to step", Settings{Intensity: 0.123, Speed: 7.3}, Settings{Intensity: 0.12, Speed: 7.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(); got != tt.want {
				t.Fatalf("Clamp(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAdjust(t *testing.T) {
	s := Default().AdjustIntensity(1).AdjustSpeed(-2)
	if s.Intensity != 0.16 || s.Speed != 9 {
		t.Fatalf("adjusted = %+v, want {0.16 9}", s)
	}
	top := Settings{Intensity: MaxIntensity, Speed: MaxSpeed}.AdjustIntensity(3).AdjustSpeed(3)
	if top.Intensity != MaxIntensity || top.Speed != MaxSpeed {
		t.Fatalf("adjust past max = %+v", top)
	}
	if s.IntensityPercent() != 16 || s.SpeedLabel() != "9s" {
		t.Fatalf("labels = %d %q", s.IntensityPercent(), s.SpeedLabel())
	}
}

func TestLoadSave(t *testing.T) {
	store := prefs.NewMemory(map[string]string{KeyIntensity: "garbage", KeySpeed: "45"})
	got := Load(store)
	if got.Intensity != DefaultIntensity || got.Speed != MaxSpeed {
		t.Fatalf("Load = %+v, want default intensity and clamped speed", got)
	}

	if err := (Settings{Intensity: 0.42, Speed: 2.5}).Save(store); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if v, _ := store.Get(KeyIntensity); v != "0.42" {
		t.Fatalf("stored intensity = %q, want 0.42", v)
	}
	if again := Load(store); again != (Settings{Intensity: 0.42, Speed: 2.5}) {
		t.Fatalf("reload = %+v", again)
	}
	if Load(nil) != Default() {
		t.Fatalf("Load(nil) should return defaults")
	}
}

func TestBeamRow(t *testing.T) {
	period := 10 * time.Second
	tests := []struct {
		elapsed time.Duration
		height  int
		want    int
	}{
		{0, 20, 0},
		{5 * time.Second, 20, 10},
		{9999 * time.Millisecond, 20, 19},
		{15 * time.Second, 20, 10},
		{time.Second, 0, -1},
	}
	for _, tt := range tests {
		if got := BeamRow(tt.elapsed, period, tt.height); got != tt.want {
			t.Errorf("BeamRow(%v, %v, %d) = %d, want %d", tt.elapsed, period, tt.height, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	e := NewEffect("#33ff66", "#000000")
	frame := "zero\none\ntwo\nthree"

	if got := e.Apply(frame, Settings{Intensity: 0, Speed: 10}, 10, -1); got != frame {
		t.Fatalf("zero intensity changed the frame: %q", got)
	}

	got := strings.Split(e.Apply(frame, Default(), 8, 2), "\n")
	if got[0] != "zero" {
		t.Fatalf("even line tinted: %q", got[0])
	}
	for _, i := range []int{1, 2, 3} {
		if !strings.HasPrefix(got[i], "\x1b[48;2;") || !strings.HasSuffix(got[i], sgrReset) {
			t.Fatalf("line %d not tinted: %q", i, got[i])
		}
	}
	if got[1] == got[3] {
		t.Fatalf("lines with different text rendered identically")
	}
	if !strings.Contains(got[1], "one     ") {
		t.Fatalf("tinted line not padded to width: %q", got[1])
	}
	if strings.HasPrefix(got[2], background(e.ScanlineColor(0.15))) {
		t.Fatalf("beam row used the scanline colour")
	}
}

func TestTint_ReappliesAfterReset(t *testing.T) {
	bg := "\x1b[48;2;1;2;3m"
	got := tint("\x1b[1mA\x1b[0mB", bg, 0)
	want := bg + "\x1b[1mA\x1b[0m" + bg + "B" + sgrReset
	if got != want {
		t.Fatalf("tint = %q, want %q", got, want)
	}
}

func TestScanlineColor_StaysNearBackground(t *testing.T) {
	e := NewEffect("#33ff66", "#000000")
	if got := e.ScanlineColor(0).Hex(); got != "#000000" {
		t.Fatalf("ScanlineColor(0) = %s, want the background", got)
	}
	band := e.ScanlineColor(MaxIntensity)
	if dBg, dText := band.DistanceRgb(e.Background), band.DistanceRgb(e.Text); dBg >= dText {
		t.Fatalf("band %s is not closer to the background (%.3f) than the text (%.3f)", band.Hex(), dBg, dText)
	}
}
