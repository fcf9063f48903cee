// Package crt holds the terminal's CRT calibration and renders the scanline
// and beam effect over a finished frame.
package crt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/five82/guide/internal/prefs"
)

// Calibration limits.
const (
	MinIntensity     = 0.0
	MaxIntensity     = 0.8
	IntensityStep    = 0.01
	DefaultIntensity = 0.15

	MinSpeed     = 1.0
	MaxSpeed     = 30.0
	SpeedStep    = 0.5
	DefaultSpeed = 10.0
)

// Preference keys the settings are persisted under.
const (
	KeyIntensity = prefs.KeyCRTIntensity
	KeySpeed     = prefs.KeyCRTSpeed
)

// Getter reads persisted string values.
type Getter interface {
	Get(key string) (string, bool)
}

// Setter writes persisted string values.
type Setter interface {
	Set(key, value string) error
}

// Settings is the CRT calibration: scanline intensity and beam period in
// seconds.
type Settings struct {
	Intensity float64
	Speed     float64
}

// Default returns the factory calibration.
func Default() Settings {
	return Settings{Intensity: DefaultIntensity, Speed: DefaultSpeed}
}

// Clamp forces both values into range and onto their step grid.
func (s Settings) Clamp() Settings {
	s.Intensity = clampStep(s.Intensity, MinIntensity, MaxIntensity, IntensityStep, DefaultIntensity)
	s.Speed = clampStep(s.Speed, MinSpeed, MaxSpeed, SpeedStep, DefaultSpeed)
	return s
}

// AdjustIntensity moves the intensity by n steps.
func (s Settings) AdjustIntensity(n int) Settings {
	s.Intensity += float64(n) * IntensityStep
	return s.Clamp()
}

// AdjustSpeed moves the beam period by n steps.
func (s Settings) AdjustSpeed(n int) Settings {
	s.Speed += float64(n) * SpeedStep
	return s.Clamp()
}

// Period is the time the beam takes to cross the screen once.
func (s Settings) Period() time.Duration {
	return time.Duration(s.Clamp().Speed * float64(time.Second))
}

// IntensityPercent is the intensity as shown on the calibration panel.
func (s Settings) IntensityPercent() int {
	return int(math.Round(s.Intensity * 100))
}

// SpeedLabel is the period as shown on the calibration panel.
func (s Settings) SpeedLabel() string {
	return strconv.FormatFloat(s.Speed, 'f', -1, 64) + "s"
}

// Load reads the settings; missing or unparsable values use the defaults.
func Load(g Getter) Settings {
	s := Default()
	if g == nil {
		return s
	}
	if v, ok := g.Get(KeyIntensity); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			s.Intensity = f
		}
	}
	if v, ok := g.Get(KeySpeed); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			s.Speed = f
		}
	}
	return s.Clamp()
}

// Save persists both values. Both writes are attempted.
func (s Settings) Save(st Setter) error {
	s = s.Clamp()
	errI := st.Set(KeyIntensity, strconv.FormatFloat(s.Intensity, 'f', -1, 64))
	errS := st.Set(KeySpeed, strconv.FormatFloat(s.Speed, 'f', -1, 64))
	if errI != nil {
		return fmt.Errorf("save intensity: %w", errI)
	}
	if errS != nil {
		return fmt.Errorf("save speed: %w", errS)
	}
	return nil
}

func clampStep(v, lo, hi, step, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = fallback
	}
	v = math.Max(lo, math.Min(hi, v))
	v = lo + math.Round((v-lo)/step)*step
	// Round away float noise so 0.15 stays 0.15 when printed.
	v = math.Round(v*1e6) / 1e6
	return math.Max(lo, math.Min(hi, v))
}
