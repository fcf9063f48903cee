package ui

import (
	"path"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/guide/internal/media"
)

// splashDoneMsg ends the player boot splash.
type splashDoneMsg struct {
	mounted
	seq int
}

// playerExitedMsg reports that the external player process returned.
type playerExitedMsg struct {
	mounted
	seq int
	err error
}

// playerOverlay covers the media list while an item plays. It shows the boot
// splash first and then hands the terminal to the player process.
type playerOverlay struct {
	item    media.Item
	seq     int
	booting bool
}

func newPlayerOverlay(item media.Item, seq int) *playerOverlay {
	return &playerOverlay{item: item, seq: seq, booting: true}
}

func splashCmd(tag mounted, seq int) tea.Cmd {
	return tea.Tick(splashDuration, func(time.Time) tea.Msg {
		return splashDoneMsg{mounted: tag, seq: seq}
	})
}

func playCmd(p Player, tag mounted, o *playerOverlay) tea.Cmd {
	seq := o.seq
	return tea.ExecProcess(p.Command(o.item), func(err error) tea.Msg {
		return playerExitedMsg{mounted: tag, seq: seq, err: err}
	})
}

// fileName is the last path element of the item's locator.
func (o *playerOverlay) fileName() string {
	target := strings.TrimRight(o.item.Target(), "/")
	name := path.Base(strings.ReplaceAll(target, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return "media.mp4"
	}
	return name
}

func (o *playerOverlay) view(theme Theme, width, height int) string {
	styles := theme.Styles()
	lines := []string{
		styles.AccentText.Render("HHGTTG-PLAYER v4.2"),
		styles.Text.Render("VO: DRM 480x320@16bpp"),
		styles.Text.Render("HW: V3D ACCEL ENABLED"),
		styles.Text.Render("CODEC: H.264/AVC [HW]"),
		styles.Text.Render("PLAY: " + o.fileName()),
		styles.Text.Blink(true).Render("_"),
	}
	if !o.booting {
		lines = append(lines, "", styles.FaintText.Render("PLAYBACK IN PROGRESS"))
	}
	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, lipgloss.NewStyle().Padding(1, 2).Render(block))
}
