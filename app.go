package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fluesternde/berggeist-theme/internal/appearance"
	"github.com/fluesternde/berggeist-theme/internal/config"
	"github.com/fluesternde/berggeist-theme/internal/core"
	"github.com/fluesternde/berggeist-theme/internal/debug"
	"github.com/fluesternde/berggeist-theme/internal/dom"
	"github.com/fluesternde/berggeist-theme/internal/performance"
	"github.com/fluesternde/berggeist-theme/internal/storage"
	"github.com/fluesternde/berggeist-theme/internal/theme"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// =============================================================================
// Type Re-exports for Wails Binding Generation
// =============================================================================

type ThemeState = types.ThemeState
type NamedPalette = types.NamedPalette
type Metrics = performance.Metrics

// =============================================================================
// App - Thin Facade for Wails Bindings
// =============================================================================

// App struct holds the application state and services
type App struct {
	state     *core.AppState
	configDir string
	cfg       *config.Config
	store     storage.Store
	source    appearance.Source
	theme     *theme.Manager
	metrics   *performance.Service
	logFile   io.Closer
}

// NewApp creates a new App instance
func NewApp() *App {
	state := core.NewAppState()
	return &App{
		state:   state,
		metrics: performance.NewService(state, nil),
	}
}

// startup is called when the app starts
func (a *App) startup(ctx context.Context) {
	a.state.Ctx = ctx
	a.state.SetEmitter(&core.WailsEventEmitter{Ctx: ctx})
	debug.Init(ctx)

	if logger, f, err := debug.Setup(slog.LevelInfo); err == nil {
		debug.SetLogger(logger)
		a.logFile = f
	}

	if err := a.init(ctx); err != nil {
		debug.Warn(debug.CategoryWails, "theme startup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// init wires config, storage, the preference source and the theme manager.
func (a *App) init(ctx context.Context) error {
	if a.configDir == "" {
		dir, err := config.Dir()
		if err != nil {
			return fmt.Errorf("config dir: %w", err)
		}
		a.configDir = dir
	}
	a.state.ConfigDir = a.configDir

	cfg, err := config.Load(filepath.Join(a.configDir, "config.yaml"))
	if err != nil {
		return err
	}
	a.cfg = cfg
	debug.SetEnabled(cfg.Debug)

	store, err := storage.Open(cfg.Storage, a.configDir)
	if err != nil {
		debug.Warn(debug.CategoryStorage, "storage unavailable, keeping selection in memory", map[string]interface{}{
			"backend": cfg.Storage.Backend,
			"error":   err.Error(),
		})
		store = storage.NewUnavailableStore()
	}
	a.store = store

	// Inside the webview the media query is the most accurate signal.
	kind := cfg.Appearance
	if kind == "" || kind == appearance.KindAuto {
		kind = appearance.KindWails
	}
	source, err := appearance.New(ctx, kind)
	if err != nil {
		return fmt.Errorf("appearance source: %w", err)
	}
	a.source = source

	mgr, err := theme.NewManager(a.state, cfg.Theme, store, source, dom.NewEventApplier(a.state))
	if err != nil {
		return err
	}
	a.theme = mgr
	a.metrics = performance.NewService(a.state, mgr)

	debug.LogTheme("theme manager ready", map[string]interface{}{
		"selection": string(mgr.Selection()),
		"effective": string(mgr.EffectiveTheme()),
		"backend":   cfg.Storage.Backend,
	})
	return nil
}

// shutdown is called when the app is closing
func (a *App) shutdown(ctx context.Context) {
	if a.theme != nil {
		a.theme.Close()
	}
	if err := appearance.Close(a.source); err != nil {
		debug.Warn(debug.CategoryAppearance, "close preference source", map[string]interface{}{"error": err.Error()})
	}
	if a.store != nil {
		if err := storage.Close(a.store); err != nil {
			debug.Warn(debug.CategoryStorage, "close store", map[string]interface{}{"error": err.Error()})
		}
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

var errNotReady = errors.New("theme manager not initialized")
