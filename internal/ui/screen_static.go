package ui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var dontPanic = []string{
	` ___   ___  _  _ _ _____ `,
	`|   \ / _ \| \| ( )_   _|`,
	`| |) | (_) | .' |/  | |  `,
	`|___/ \___/|_|\_|   |_|  `,
	``,
	` ___  _   _  _ ___ ___ `,
	`| _ \/_\ | \| |_ _/ __|`,
	`|  _/ _ \| .' || | (__ `,
	`|_|/_/ \_\_|\_|___\___|`,
}

type homeScreen struct {
	keys keyMap
	help help.Model
}

func newHomeScreen(keys keyMap) homeScreen {
	return homeScreen{keys: keys, help: help.New()}
}

func (homeScreen) Init() tea.Cmd { return nil }

func (h homeScreen) Update(tea.Msg, keyMap) (screenModel, tea.Cmd) { return h, nil }

func (h homeScreen) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	h.help.Width = width
	h.help.Styles.ShortKey = styles.AccentText
	h.help.Styles.ShortDesc = styles.FaintText
	h.help.Styles.ShortSeparator = styles.FaintText

	banner := styles.Banner.Render(lipgloss.JoinVertical(lipgloss.Center, dontPanic...))
	block := lipgloss.JoinVertical(lipgloss.Center,
		banner,
		"",
		styles.MutedText.Render("[ 1-5 ] NAVIGATION READY"),
		h.help.View(h.keys),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

var redButton = []string{
	`   .-'''-.   `,
	`  /       \  `,
	` |    O    | `,
	`  \       /  `,
	`   '-...-'   `,
}

type warningScreen struct{}

func (warningScreen) Init() tea.Cmd { return nil }

func (w warningScreen) Update(tea.Msg, keyMap) (screenModel, tea.Cmd) { return w, nil }

func (warningScreen) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	block := lipgloss.JoinVertical(lipgloss.Center,
		styles.DangerText.Render("PLEASE DO NOT PRESS THIS BUTTON AGAIN"),
		"",
		styles.DangerText.Render(lipgloss.JoinVertical(lipgloss.Center, redButton...)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
