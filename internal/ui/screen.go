package ui

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/guide/internal/crt"
	"github.com/five82/guide/internal/media"
	"github.com/five82/guide/internal/wiki"
)

// Screen identifies one of the five top-level screens.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenSearch
	ScreenMedia
	ScreenWarning
	ScreenSystem
)

// Valid reports whether s names a known screen.
func (s Screen) Valid() bool {
	return s >= ScreenHome && s <= ScreenSystem
}

// Module is the name shown in the status bar.
func (s Screen) Module() string {
	switch s {
	case ScreenHome:
		return "CORE_LOGIC"
	case ScreenSearch:
		return "SUB_ETHER_SEARCH"
	case ScreenMedia:
		return "MEDIA_VAULT"
	case ScreenWarning:
		return "CRITICAL_HAZARD"
	case ScreenSystem:
		return "KERNEL_SHELL"
	default:
		return "UNKNOWN"
	}
}

// ParseScreen decodes a persisted screen id. Anything unknown is Home.
func ParseScreen(v string) Screen {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return ScreenHome
	}
	if s := Screen(n); s.Valid() {
		return s
	}
	return ScreenHome
}

// screenForKey maps the digit keys 1-5 onto screens.
func screenForKey(k string) (Screen, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '5' {
		return 0, false
	}
	return Screen(k[0] - '1'), true
}

// KV is the synchronous string store the screens persist their settings in.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// RecordStore is the asynchronous structured store.
type RecordStore interface {
	Put(ctx context.Context, key string, value any) error
	Get(ctx context.Context, key string, dest any) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Scanner lists the videos of a directory.
type Scanner interface {
	Scan(ctx context.Context, h media.Handle) ([]media.Item, error)
}

// Player builds the process that plays an item.
type Player interface {
	Command(item media.Item) *exec.Cmd
}

// screenModel is one mounted screen. Update returns the screen to keep.
type screenModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg, keys keyMap) (screenModel, tea.Cmd)
	View(theme Theme, width, height int) string
}

// inputCapturer is implemented by screens that temporarily own every key,
// digits included.
type inputCapturer interface {
	capturingInput() bool
}

// disposer is implemented by screens holding resources past unmount.
type disposer interface {
	dispose()
}

// env is what a screen gets from the root when it is mounted.
type env struct {
	ctx         context.Context
	mount       int
	prefs       KV
	records     RecordStore
	searcher    wiki.Searcher
	scanner     Scanner
	player      Player
	logger      *zap.Logger
	logPath     string
	demo        []media.Item
	watch       bool
	calibration crt.Settings
	width       int
	height      int
}

func (e env) persist(key, value string) {
	if err := e.prefs.Set(key, value); err != nil {
		e.logger.Warn("persist setting failed", zap.String("key", key), zap.Error(err))
	}
}

// mounted tags an asynchronous result with the screen instance it is for.
type mounted struct {
	mount int
}

func (m mounted) mountID() int { return m.mount }

type mountedMsg interface {
	mountID() int
}

// clickMsg is a left click translated into content coordinates.
type clickMsg struct {
	X, Y int
}

// calibrationMsg carries a new CRT calibration up to the root.
type calibrationMsg struct {
	mounted
	settings crt.Settings
}

// discarder is implemented by results that own resources and must release
// them when the root drops them as stale.
type discarder interface {
	discard()
}
