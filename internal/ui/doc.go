// Package ui implements the guide's kiosk terminal on Bubble Tea.
//
// # Overview
//
// The root Model owns an explicit AppState (active screen, boot gate and CRT
// calibration) and one mounted screen at a time. Screens are rebuilt every
// time they become active, so each visit starts from persisted state only.
//
// # Screens
//
//   - Home: the DON'T PANIC banner
//   - Search: on-screen keyboard, encyclopedia lookup and article popup
//   - Media Library: directory scan, list navigation and the player overlay
//   - Warning: the button you should not press again
//   - System: boot log, guide log tail and CRT calibration
//
// # Keys
//
// Digits 1-5 switch screens once the terminal has booted and are never seen
// by the screens. Before boot only enter (or a click) does anything. ctrl+c
// always quits.
//
// # Asynchronous work
//
// Storage reads, directory scans and lookups run as tea.Cmds. Each result
// carries the mount id of the screen that asked for it; the root drops
// results addressed to a screen that is no longer mounted.
package ui
