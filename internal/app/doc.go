// Package app is the composition root of the guide.
//
// Open loads the TOML config, builds the zap logger, opens the prefs file and
// the SQLite record store, and constructs the encyclopedia client, the
// directory scanner and the external player. Run hands the result to the
// terminal UI and blocks until it exits.
//
// Startup errors split in two:
//
//   - Fatal: an unreadable or invalid config file, an unparsable search URL.
//   - Degraded: a log file, prefs file or database that cannot be opened. The
//     guide still boots, with a no-op logger or empty in-memory stores, and
//     the problem is logged when a logger is available.
//
// The headless CLI commands reuse the same Runtime so they see exactly what
// the kiosk would.
package app
