package theme

import (
	"errors"
	"sync"

	"github.com/fluesternde/berggeist-theme/internal/core"
	"github.com/fluesternde/berggeist-theme/internal/debug"
	"github.com/fluesternde/berggeist-theme/internal/storage"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// DefaultStorageKey is the key the selection is persisted under.
const DefaultStorageKey = "fluesternde-berg-geist-theme"

// ErrClosed is returned by SetTheme after Close.
var ErrClosed = errors.New("theme manager is closed")

// Store persists the raw selection.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// PreferenceSource reports the OS color scheme.
type PreferenceSource interface {
	Preference() types.ColorScheme
	Watch(fn func(types.ColorScheme)) (stop func(), err error)
}

// Applier carries out a DOMState.
type Applier interface {
	Apply(state types.DOMState)
}

// DefaultConfig returns the configuration used for unset fields.
func DefaultConfig() types.ThemeConfig {
	enabled := true
	return types.ThemeConfig{
		DefaultTheme:      types.SelectionSystem,
		StorageKey:        DefaultStorageKey,
		EnableTransitions: &enabled,
	}
}

// WithDefaults fills unset fields and validates the default theme.
func WithDefaults(cfg types.ThemeConfig) (types.ThemeConfig, error) {
	def := DefaultConfig()
	if cfg.DefaultTheme == "" {
		cfg.DefaultTheme = def.DefaultTheme
	}
	if !ValidSelection(cfg.DefaultTheme) {
		return cfg, &core.InvalidSelectionError{Value: string(cfg.DefaultTheme)}
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = def.StorageKey
	}
	if cfg.EnableTransitions == nil {
		cfg.EnableTransitions = def.EnableTransitions
	}
	return cfg, nil
}

// Manager owns the theme selection. It is constructed once and handed to
// every consumer that reads or changes the theme.
type Manager struct {
	state   *core.AppState
	cfg     types.ThemeConfig
	store   Store
	source  PreferenceSource
	applier Applier

	mu        sync.RWMutex
	selection types.Selection
	effective types.EffectiveTheme
	stopWatch func()
	closed    bool
	stats     types.ThemeStats
}

// NewManager reads the persisted selection, applies it, and starts following
// the OS preference if the selection is "system". A nil store behaves like
// unavailable storage; a nil source always reports light.
func NewManager(state *core.AppState, cfg types.ThemeConfig, store Store, source PreferenceSource, applier Applier) (*Manager, error) {
	cfg, err := WithDefaults(cfg)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = core.NewAppState()
	}
	if applier == nil {
		applier = noopApplier{}
	}

	m := &Manager{
		state:   state,
		cfg:     cfg,
		store:   store,
		source:  source,
		applier: applier,
	}

	m.mu.Lock()
	m.selection = m.loadSelection()
	m.applyLocked()
	m.syncWatchLocked()
	m.mu.Unlock()

	debug.LogTheme("theme initialized", map[string]interface{}{
		"selection": string(m.selection),
		"effective": string(m.effective),
	})
	return m, nil
}

// ---------- Persistence ----------

func (m *Manager) loadSelection() types.Selection {
	if m.store == nil {
		return m.cfg.DefaultTheme
	}

	raw, err := m.store.Get(m.cfg.StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return m.cfg.DefaultTheme
	}
	if err != nil {
		m.stats.StorageFailures++
		debug.Warn(debug.CategoryStorage, "theme storage unavailable, using default", map[string]interface{}{
			"key":   m.cfg.StorageKey,
			"error": err.Error(),
		})
		return m.cfg.DefaultTheme
	}

	sel, err := ParseSelection(raw)
	if err != nil {
		m.stats.CorruptSelections++
		debug.Warn(debug.CategoryStorage, "stored theme is not recognized, using default", map[string]interface{}{
			"key":     m.cfg.StorageKey,
			"value":   raw,
			"default": string(m.cfg.DefaultTheme),
		})
		return m.cfg.DefaultTheme
	}
	return sel
}

func (m *Manager) persistLocked(sel types.Selection) {
	if m.store == nil {
		return
	}
	if err := m.store.Set(m.cfg.StorageKey, string(sel)); err != nil {
		m.stats.StorageFailures++
		debug.Warn(debug.CategoryStorage, "failed to persist theme", map[string]interface{}{
			"key":   m.cfg.StorageKey,
			"value": string(sel),
			"error": err.Error(),
		})
	}
}

// ---------- Resolution ----------

func (m *Manager) preference() types.ColorScheme {
	if m.source == nil {
		return types.SchemeLight
	}
	return m.source.Preference()
}

func (m *Manager) applyLocked() {
	// selection is validated on every path that sets it
	eff, _ := Resolve(m.selection, m.preference())
	m.effective = eff
	m.applier.Apply(Describe(eff, m.cfg))
}

// syncWatchLocked keeps exactly one OS listener while the selection is
// "system" and none otherwise.
func (m *Manager) syncWatchLocked() {
	want := m.selection == types.SelectionSystem && !m.closed && m.source != nil

	if want && m.stopWatch == nil {
		stop, err := m.source.Watch(m.handlePreferenceChange)
		if err != nil {
			debug.Warn(debug.CategoryAppearance, "cannot follow OS preference", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		m.stopWatch = stop
		debug.LogAppearance("listening for OS preference", nil)
	}
	if !want && m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
		debug.LogAppearance("stopped listening for OS preference", nil)
	}
}

func (m *Manager) handlePreferenceChange(types.ColorScheme) {
	m.mu.Lock()
	if m.closed || m.selection != types.SelectionSystem {
		m.mu.Unlock()
		return
	}
	m.stats.PreferenceEvents++
	prev := m.effective
	// Re-read rather than trust the event payload so the root always
	// matches the latest preference, however events interleave.
	m.applyLocked()
	st := m.stateLocked()
	m.mu.Unlock()

	if st.EffectiveTheme != prev {
		m.state.EmitEvent(core.EventThemeChanged, st)
	}
}

// ---------- Public API ----------

// State returns the selection and the theme it resolved to.
func (m *Manager) State() types.ThemeState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stateLocked()
}

func (m *Manager) stateLocked() types.ThemeState {
	return types.ThemeState{Selection: m.selection, EffectiveTheme: m.effective}
}

// Selection returns the raw selection, possibly "system".
func (m *Manager) Selection() types.Selection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selection
}

// EffectiveTheme returns the rendered theme.
func (m *Manager) EffectiveTheme() types.EffectiveTheme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.effective
}

// Config returns the configuration with defaults applied.
func (m *Manager) Config() types.ThemeConfig {
	return m.cfg
}

// SetTheme switches to sel and persists it.
func (m *Manager) SetTheme(sel types.Selection) error {
	if !ValidSelection(sel) {
		return &core.InvalidSelectionError{Value: string(sel)}
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.selection = sel
	m.persistLocked(sel)
	m.applyLocked()
	m.syncWatchLocked()
	m.stats.Switches++
	st := m.stateLocked()
	m.mu.Unlock()

	debug.LogTheme("theme changed", map[string]interface{}{
		"selection": string(st.Selection),
		"effective": string(st.EffectiveTheme),
	})
	m.state.EmitEvent(core.EventThemeChanged, st)
	return nil
}

// SetThemeName parses name and switches to it.
func (m *Manager) SetThemeName(name string) error {
	sel, err := ParseSelection(name)
	if err != nil {
		return err
	}
	return m.SetTheme(sel)
}

// Watching reports whether an OS listener is registered.
func (m *Manager) Watching() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stopWatch != nil
}

// Stats returns the manager's counters.
func (m *Manager) Stats() types.ThemeStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.stats
	if m.stopWatch != nil {
		s.ActiveListeners = 1
	}
	return s
}

// Close unregisters the OS listener. The selection stays readable.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.syncWatchLocked()
}

type noopApplier struct{}

func (noopApplier) Apply(types.DOMState) {}
