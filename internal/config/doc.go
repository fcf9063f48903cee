// Package config loads the guide's TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/guide/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults per field
//
// # TOML Format
//
//	[search]
//	rest_url = "https://en.wikipedia.org/w/rest.php"
//	api_url = "https://en.wikipedia.org/api/rest_v1"
//	limit = 5
//	timeout_seconds = 10
//	cache_minutes = 15   # 0 disables the summary cache
//
//	[media]
//	player = "mpv --fs --really-quiet"
//	extensions = ["mp4", "mkv", "webm"]
//	watch = false
//
//	[storage]
//	prefs_path = "~/.config/guide/prefs.toml"
//	db_path = "~/.local/share/guide/guide.db"
//
//	[log]
//	path = "~/.local/state/guide/guide.log"
//	level = "info"
//
//	[ui]
//	theme = "Phosphor"   # or "Amber"
//
// Every field is optional. Tilde expansion is performed on all paths.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors. A missing file is not an error so the
// kiosk boots on a fresh device without any setup.
package config
