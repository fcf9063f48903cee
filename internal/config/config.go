package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings the guide reads at startup.
type Config struct {
	Search  SearchConfig
	Media   MediaConfig
	Storage StorageConfig
	Log     LogConfig
	UI      UIConfig
}

// SearchConfig points the search flow at the encyclopedia REST API.
type SearchConfig struct {
	RestURL   string
	APIURL    string
	Limit     int
	Timeout   time.Duration
	CacheTTL  time.Duration
	UserAgent string
}

// MediaConfig controls the media library and the external player.
type MediaConfig struct {
	Player     string
	Extensions []string
	Watch      bool
	DemoTitle  string
	DemoSrc    string
}

// StorageConfig locates the two persistence files.
type StorageConfig struct {
	PrefsPath string
	DBPath    string
}

// UIConfig selects the terminal palette.
type UIConfig struct {
	Theme string
}

// LogConfig controls the structured log file.
type LogConfig struct {
	Path  string
	Level string
}

const (
	defaultConfigPath = "~/.config/guide/config.toml"
	defaultPrefsPath  = "~/.config/guide/prefs.toml"
	defaultDBPath     = "~/.local/share/guide/guide.db"
	defaultLogPath    = "~/.local/state/guide/guide.log"
	defaultLogLevel   = "info"
	defaultTheme      = "Phosphor"

	defaultRestURL   = "https://en.wikipedia.org/w/rest.php"
	defaultAPIURL    = "https://en.wikipedia.org/api/rest_v1"
	defaultLimit     = 5
	defaultTimeout   = 10 * time.Second
	defaultCacheTTL  = 15 * time.Minute
	defaultUserAgent = "guide/42.0 (kiosk terminal)"

	defaultPlayer    = "mpv --fs --really-quiet"
	defaultDemoTitle = "Welcome to the Guide.mp4"
	defaultDemoSrc   = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"
)

var defaultExtensions = []string{".mp4", ".mkv", ".webm"}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Search: SearchConfig{
			RestURL:   defaultRestURL,
			APIURL:    defaultAPIURL,
			Limit:     defaultLimit,
			Timeout:   defaultTimeout,
			CacheTTL:  defaultCacheTTL,
			UserAgent: defaultUserAgent,
		},
		Media: MediaConfig{
			Player:     defaultPlayer,
			Extensions: append([]string(nil), defaultExtensions...),
			DemoTitle:  defaultDemoTitle,
			DemoSrc:    defaultDemoSrc,
		},
		Storage: StorageConfig{
			PrefsPath: mustExpand(defaultPrefsPath),
			DBPath:    mustExpand(defaultDBPath),
		},
		Log: LogConfig{
			Path:  mustExpand(defaultLogPath),
			Level: defaultLogLevel,
		},
		UI: UIConfig{Theme: defaultTheme},
	}
}

type rawConfig struct {
	Search struct {
		RestURL        string `toml:"rest_url"`
		APIURL         string `toml:"api_url"`
		Limit          int    `toml:"limit"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		CacheMinutes   *int   `toml:"cache_minutes"`
		UserAgent      string `toml:"user_agent"`
	} `toml:"search"`
	Media struct {
		Player     string   `toml:"player"`
		Extensions []string `toml:"extensions"`
		Watch      bool     `toml:"watch"`
		DemoTitle  string   `toml:"demo_title"`
		DemoSrc    string   `toml:"demo_src"`
	} `toml:"media"`
	Storage struct {
		PrefsPath string `toml:"prefs_path"`
		DBPath    string `toml:"db_path"`
	} `toml:"storage"`
	Log struct {
		Path  string `toml:"path"`
		Level string `toml:"level"`
	} `toml:"log"`
	UI struct {
		Theme string `toml:"theme"`
	} `toml:"ui"`
}

// Load locates and parses the guide config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	applySearch(&cfg.Search, raw)
	applyMedia(&cfg.Media, raw)

	if p := strings.TrimSpace(raw.Storage.PrefsPath); p != "" {
		cfg.Storage.PrefsPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.Storage.DBPath); p != "" {
		cfg.Storage.DBPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.Log.Path); p != "" {
		cfg.Log.Path = mustExpand(p)
	}
	if lvl := strings.ToLower(strings.TrimSpace(raw.Log.Level)); lvl != "" {
		cfg.Log.Level = lvl
	}
	if theme := strings.TrimSpace(raw.UI.Theme); theme != "" {
		cfg.UI.Theme = theme
	}

	return cfg, nil
}

func applySearch(dst *SearchConfig, raw rawConfig) {
	if v := strings.TrimRight(strings.TrimSpace(raw.Search.RestURL), "/"); v != "" {
		dst.RestURL = v
	}
	if v := strings.TrimRight(strings.TrimSpace(raw.Search.APIURL), "/"); v != "" {
		dst.APIURL = v
	}
	if raw.Search.Limit > 0 {
		dst.Limit = raw.Search.Limit
	}
	if raw.Search.TimeoutSeconds > 0 {
		dst.Timeout = time.Duration(raw.Search.TimeoutSeconds) * time.Second
	}
	// cache_minutes = 0 disables the summary cache; absent keeps the default.
	if raw.Search.CacheMinutes != nil && *raw.Search.CacheMinutes >= 0 {
		dst.CacheTTL = time.Duration(*raw.Search.CacheMinutes) * time.Minute
	}
	if v := strings.TrimSpace(raw.Search.UserAgent); v != "" {
		dst.UserAgent = v
	}
}

func applyMedia(dst *MediaConfig, raw rawConfig) {
	if v := strings.TrimSpace(raw.Media.Player); v != "" {
		dst.Player = v
	}
	if exts := normalizeExtensions(raw.Media.Extensions); len(exts) > 0 {
		dst.Extensions = exts
	}
	dst.Watch = raw.Media.Watch
	if v := strings.TrimSpace(raw.Media.DemoTitle); v != "" {
		dst.DemoTitle = v
	}
	if v := strings.TrimSpace(raw.Media.DemoSrc); v != "" {
		dst.DemoSrc = v
	}
}

func normalizeExtensions(values []string) []string {
	var out []string
	for _, v := range values {
		ext := strings.ToLower(strings.TrimSpace(v))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
