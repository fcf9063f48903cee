package crt

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	sgrReset     = "\x1b[0m"
	sgrResetBare = "\x1b[m"
	// beamStrength is how far the beam row's band leans toward the text colour.
	beamStrength = 0.35
)

// Effect paints scanlines and the rolling beam over a rendered frame.
type Effect struct {
	Text       colorful.Color
	Background colorful.Color
}

// NewEffect builds an Effect from two hex colours. Unparsable colours fall
// back to phosphor green on black.
func NewEffect(text, background string) Effect {
	t, err := colorful.Hex(text)
	if err != nil {
		t, _ = colorful.Hex("#33ff66")
	}
	b, err := colorful.Hex(background)
	if err != nil {
		b, _ = colorful.Hex("#000000")
	}
	return Effect{Text: t, Background: b}
}

// ScanlineColor is the band colour for scanlines at the given intensity:
// the background lifted toward the text colour by a share of the intensity.
func (e Effect) ScanlineColor(intensity float64) colorful.Color {
	return e.Background.BlendRgb(e.Text, intensity*0.25).Clamped()
}

// BeamColor is the band colour of the beam row.
func (e Effect) BeamColor() colorful.Color {
	return e.Background.BlendRgb(e.Text, beamStrength).Clamped()
}

// BeamRow is the row the beam is on after elapsed, for a screen of height
// rows and a full sweep every period.
func BeamRow(elapsed, period time.Duration, height int) int {
	if height <= 0 || period <= 0 {
		return -1
	}
	if elapsed < 0 {
		elapsed = 0
	}
	phase := float64(elapsed%period) / float64(period)
	row := int(math.Floor(phase * float64(height)))
	if row >= height {
		row = height - 1
	}
	return row
}

// Apply tints every odd line of frame and the beam row, padding each tinted
// line to width. A zero intensity leaves the scanlines off; beamRow < 0
// disables the beam.
func (e Effect) Apply(frame string, s Settings, width, beamRow int) string {
	s = s.Clamp()
	if s.Intensity <= 0 && beamRow < 0 {
		return frame
	}

	scan := background(e.ScanlineColor(s.Intensity))
	beam := background(e.BeamColor())

	lines := strings.Split(frame, "\n")
	for i, line := range lines {
		switch {
		case i == beamRow:
			lines[i] = tint(line, beam, width)
		case s.Intensity > 0 && i%2 == 1:
			lines[i] = tint(line, scan, width)
		}
	}
	return strings.Join(lines, "\n")
}

func background(c colorful.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

// tint sets a line's default background, re-applying it after every reset so
// spans with their own background keep it.
func tint(line, bg string, width int) string {
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	line = strings.ReplaceAll(line, sgrReset, sgrReset+bg)
	line = strings.ReplaceAll(line, sgrResetBare, sgrResetBare+bg)
	return bg + line + sgrReset
}
