package ui

import "time"

// Layout constants.
const (
	// statusBarHeight is the status line plus its rule.
	statusBarHeight = 2

	// keyboardTop is the first content row of the on-screen keyboard.
	keyboardTop = 4

	// keyboardLeft is the first content column of the on-screen keyboard.
	keyboardLeft = 2

	// popupScrollLines is how far one arrow press scrolls the article.
	popupScrollLines = 4

	// popupMaxWidth caps the article popup on wide terminals.
	popupMaxWidth = 76

	// logTailLines is how much of the guide log the System screen shows.
	logTailLines = 8

	defaultWidth  = 80
	defaultHeight = 24
)

// Timing constants.
const (
	// splashDuration is how long the player boot splash stays up.
	splashDuration = 400 * time.Millisecond

	// frameInterval drives the CRT beam.
	frameInterval = 100 * time.Millisecond

	// lookupTimeout bounds one two-stage encyclopedia lookup.
	lookupTimeout = 15 * time.Second

	// storageTimeout bounds record store calls made from the UI.
	storageTimeout = 2 * time.Second
)
