package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the terminal.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Border string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string
	Danger  string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.Surface)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	StatusBar lipgloss.Style
	Banner    lipgloss.Style
	Key       lipgloss.Style
	Selected  lipgloss.Style
	Box       lipgloss.Style
}

var themes = map[string]Theme{
	"Phosphor": phosphorTheme(),
	"Amber":    amberTheme(),
}

// GetTheme returns a theme by name, ignoring case. Unknown names get Phosphor.
func GetTheme(name string) Theme {
	for key, t := range themes {
		if strings.EqualFold(key, strings.TrimSpace(name)) {
			return t
		}
	}
	return phosphorTheme()
}

func phosphorTheme() Theme {
	return Theme{
		Name: "Phosphor",

		Background: "#000000",
		Surface:    "#0b1a0f",

		SelectionBg:   "#33ff66",
		SelectionText: "#000000",

		Border: "#1f7a3a",

		Text:    "#33ff66",
		Muted:   "#1f9944",
		Faint:   "#666666",
		Accent:  "#5fafff", // blue, used for progress lines
		Warning: "#ffd75f", // yellow
		Danger:  "#ff3b3b", // red
	}
}

func amberTheme() Theme {
	return Theme{
		Name: "Amber",

		Background: "#000000",
		Surface:    "#1a1204",

		SelectionBg:   "#ffb000",
		SelectionText: "#000000",

		Border: "#8a5f00",

		Text:    "#ffb000",
		Muted:   "#b37b00",
		Faint:   "#666666",
		Accent:  "#ffd27f",
		Warning: "#fff1a8",
		Danger:  "#ff4f2b",
	}
}
