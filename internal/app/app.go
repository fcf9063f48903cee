package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/guide/internal/config"
	"github.com/five82/guide/internal/logging"
	"github.com/five82/guide/internal/media"
	"github.com/five82/guide/internal/prefs"
	"github.com/five82/guide/internal/state"
	"github.com/five82/guide/internal/ui"
	"github.com/five82/guide/internal/wiki"
)

// Options configure the guide application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses the config value
	DBPath     string // empty uses the config value
}

// Runtime holds everything the kiosk and the headless commands share.
type Runtime struct {
	Config   config.Config
	Logger   *zap.Logger
	Prefs    *prefs.File
	Records  state.Records
	Searcher *wiki.Client
	Scanner  *media.Scanner
	Player   *media.Player

	db *state.SQLite
}

// Open loads the configuration and builds the stores and clients. Only a bad
// config or search endpoint is fatal; stores that cannot be opened degrade to
// empty ones.
func Open(ctx context.Context, opts Options) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load guide config: %w", err)
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		logger = zap.NewNop()
	}

	rt := &Runtime{Config: cfg, Logger: logger}

	rt.Prefs, err = prefs.Open(cfg.Storage.PrefsPath)
	if err != nil {
		logger.Warn("prefs unavailable, starting empty", zap.String("path", cfg.Storage.PrefsPath), zap.Error(err))
	}

	db, err := state.Open(ctx, cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("record store unavailable, using memory", zap.String("path", cfg.Storage.DBPath), zap.Error(err))
		rt.Records = state.NewMemory()
	} else {
		rt.db = db
		rt.Records = db
	}

	rt.Searcher, err = wiki.NewClient(wiki.Options{
		RestURL:   cfg.Search.RestURL,
		APIURL:    cfg.Search.APIURL,
		Limit:     cfg.Search.Limit,
		Timeout:   cfg.Search.Timeout,
		CacheTTL:  cfg.Search.CacheTTL,
		UserAgent: cfg.Search.UserAgent,
	})
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("init search client: %w", err)
	}

	rt.Scanner = media.NewScanner(cfg.Media.Extensions)

	if p, err := media.NewPlayer(cfg.Media.Player); err != nil {
		logger.Warn("player disabled", zap.String("player", cfg.Media.Player), zap.Error(err))
	} else {
		rt.Player = p
	}
	return rt, nil
}

func applyOverrides(cfg *config.Config, opts Options) error {
	if p := strings.TrimSpace(opts.PrefsPath); p != "" {
		expanded, err := config.ExpandPath(p)
		if err != nil {
			return fmt.Errorf("prefs path: %w", err)
		}
		cfg.Storage.PrefsPath = expanded
	}
	if p := strings.TrimSpace(opts.DBPath); p != "" {
		expanded, err := config.ExpandPath(p)
		if err != nil {
			return fmt.Errorf("db path: %w", err)
		}
		cfg.Storage.DBPath = expanded
	}
	return nil
}

// Close flushes the logger and releases the record store.
func (r *Runtime) Close() error {
	if r == nil {
		return nil
	}
	if r.Logger != nil {
		_ = r.Logger.Sync()
	}
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Reset forgets every persisted preference and the remembered directory.
func (r *Runtime) Reset(ctx context.Context) error {
	errPrefs := r.Prefs.Clear()
	errRecords := r.Records.Delete(ctx, state.KeyDirHandle)
	if err := errors.Join(errPrefs, errRecords); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	r.Logger.Info("persisted state cleared")
	return nil
}

// UIOptions wires the runtime into the terminal UI.
func (r *Runtime) UIOptions(ctx context.Context) ui.Options {
	opts := ui.Options{
		Context:   ctx,
		Prefs:     r.Prefs,
		Records:   r.Records,
		Searcher:  r.Searcher,
		Scanner:   r.Scanner,
		Logger:    r.Logger,
		LogPath:   r.Config.Log.Path,
		Demo:      media.DemoItems(r.Config.Media.DemoTitle, r.Config.Media.DemoSrc),
		Watch:     r.Config.Media.Watch,
		ThemeName: r.Config.UI.Theme,
	}
	// A nil *media.Player must not become a non-nil interface.
	if r.Player != nil {
		opts.Player = r.Player
	}
	return opts
}

// Run boots the guide TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.Logger.Info("guide starting",
		zap.String("prefs", rt.Config.Storage.PrefsPath),
		zap.String("db", rt.Config.Storage.DBPath),
	)
	if err := ui.Run(rt.UIOptions(ctx)); err != nil {
		rt.Logger.Error("ui exited with error", zap.Error(err))
		return fmt.Errorf("run ui: %w", err)
	}
	rt.Logger.Info("guide stopped")
	return nil
}
