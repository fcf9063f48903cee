// Package media discovers playable videos in a local directory and launches
// an external player for them.
//
// A Handle is the remembered directory. Every reuse goes through
// RequestPermission before Scanner reads from it.
package media
