package theme

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fluesternde/berggeist-theme/internal/appearance"
	"github.com/fluesternde/berggeist-theme/internal/core"
	"github.com/fluesternde/berggeist-theme/internal/dom"
	"github.com/fluesternde/berggeist-theme/internal/storage"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

type testEnv struct {
	state   *core.AppState
	events  *core.RecordingEmitter
	store   *storage.MemoryStore
	source  *appearance.Broadcaster
	root    *dom.MemoryRoot
	manager *Manager
}

func newTestEnv(t *testing.T, cfg types.ThemeConfig, os types.ColorScheme, store *storage.MemoryStore) *testEnv {
	t.Helper()
	if store == nil {
		store = storage.NewMemoryStore()
	}
	env := &testEnv{
		state:  core.NewAppState(),
		events: &core.RecordingEmitter{},
		store:  store,
		source: appearance.NewManual(os),
		root:   dom.NewMemoryRoot(),
	}
	env.state.Emitter = env.events
	m, err := NewManager(env.state, cfg, env.store, env.source, dom.NewAdapter(env.root))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(m.Close)
	env.manager = m
	return env
}

func (e *testEnv) assertOnlyClass(t *testing.T, want string) {
	t.Helper()
	classes := e.root.Classes()
	if len(classes) != 1 || classes[0] != want {
		t.Errorf("expected root classes [%s], got %v", want, classes)
	}
}

func (e *testEnv) themeProperties() map[string]string {
	out := map[string]string{}
	for k, v := range e.root.Properties() {
		if len(k) > len(PropertyPrefix) && k[:len(PropertyPrefix)] == PropertyPrefix {
			out[k] = v
		}
	}
	return out
}

func TestDefaultsWithDarkOS(t *testing.T) {
	env := newTestEnv(t, types.ThemeConfig{}, types.SchemeDark, nil)

	st := env.manager.State()
	if st.Selection != types.SelectionSystem {
		t.Errorf("expected selection system, got %s", st.Selection)
	}
	if st.EffectiveTheme != types.ThemeDark {
		t.Errorf("expected effective dark, got %s", st.EffectiveTheme)
	}
	env.assertOnlyClass(t, "dark")
	if props := env.themeProperties(); len(props) != 0 {
		t.Errorf("expected no theme properties, got %v", props)
	}
	if !env.manager.Watching() {
		t.Error("expected an OS listener in system mode")
	}
}

func TestSetThemeMagicalBerg(t *testing.T) {
	env := newTestEnv(t, types.ThemeConfig{}, types.SchemeLight, nil)

	if err := env.manager.SetTheme(types.SelectionMagicalBerg); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}

	env.assertOnlyClass(t, "magical-berg")
	props := env.themeProperties()
	if len(props) != 8 {
		t.Fatalf("expected 8 theme properties, got %d: %v", len(props), props)
	}
	for _, r := range Roles(MagicalBerg()) {
		if props[PropertyPrefix+r[0]] != r[1] {
			t.Errorf("%s: expected %s, got %s", r[0], r[1], props[PropertyPrefix+r[0]])
		}
	}
	stored, err := env.store.Get(DefaultStorageKey)
	if err != nil || stored != "magical-berg" {
		t.Errorf("expected storage to hold magical-berg, got %q (%v)", stored, err)
	}
	if env.manager.Watching() {
		t.Error("listener must be removed outside system mode")
	}
}

func TestSetThemePersistsAndReloads(t *testing.T) {
	store := storage.NewMemoryStore()
	for _, sel := range types.Selections {
		env := newTestEnv(t, types.ThemeConfig{}, types.SchemeLight, store)
		if err := env.manager.SetTheme(sel); err != nil {
			t.Fatalf("SetTheme(%s) failed: %v", sel, err)
		}
		if v, _ := store.Get(DefaultStorageKey); v != string(sel) {
			t.Errorf("expected stored %s, got %s", sel, v)
		}

		fresh := newTestEnv(t, types.ThemeConfig{}, types.SchemeLight, store)
		if fresh.manager.Selection() != sel {
			t.Errorf("fresh manager read %s, want %s", fresh.manager.Selection(), sel)
		}
	}
}

func TestCustomToPlainLeavesNoResidue(t *testing.T) {
	for _, custom := range []types.Selection{types.SelectionMagicalBerg, types.SelectionSchwartzWald} {
		for _, plain := range []types.Selection{types.SelectionLight, types.SelectionDark, types.SelectionSystem} {
			env := newTestEnv(t, types.ThemeConfig{ScaleOverrides: true}, types.SchemeDark, nil)
			_ = env.manager.SetTheme(custom)
			if len(env.root.Properties()) == 0 {
				t.Fatalf("%s should set properties", custom)
			}
			_ = env.manager.SetTheme(plain)
			if props := env.root.Properties(); len(props) != 0 {
				t.Errorf("%s -> %s left properties %v", custom, plain, props)
			}
		}
	}
}

func TestOSToggleInSystemMode(t *testing.T) {
	env := newTestEnv(t, types.ThemeConfig{}, types.SchemeLight, nil)
	env.assertOnlyClass(t, "light")

	env.source.Set(types.SchemeDark)
	if env.manager.EffectiveTheme() != types.ThemeDark {
		t.Errorf("expected dark after OS flip, got %s", env.manager.EffectiveTheme())
	}
	env.assertOnlyClass(t, "dark")

	env.source.Set(types.SchemeLight)
	env.assertOnlyClass(t, "light")

	if len(env.events.Events(core.EventThemeChanged)) != 2 {
		t.Errorf("expected 2 theme:changed events, got %d", len(env.events.Events(core.EventThemeChanged)))
	}
	if env.store.Writes() != 0 {
		t.Error("OS flips must not write storage")
	}
}

func TestOSToggleOutsideSystemMode(t *testing.T) {
	env := newTestEnv(t, types.ThemeConfig{DefaultTheme: types.SelectionSchwartzWald}, types.SchemeLight, nil)

	env.source.Set(types.SchemeDark)
	env.source.Set(types.SchemeLight)

	if env.manager.EffectiveTheme() != types.ThemeSchwartzWald {
		t.Errorf("expected schwartz-wald, got %s", env.manager.EffectiveTheme())
	}
	env.assertOnlyClass(t, "schwartz-wald")
	if env.manager.Stats().PreferenceEvents != 0 {
		t.Error("no preference events should be handled outside system mode")
	}
}

func TestNoDanglingListeners(t *testing.T) {
	env := newTestEnv(t, types.ThemeConfig{DefaultTheme: types.SelectionLight}, types.SchemeLight, nil)
	if env.source.Watchers() != 0 {
		t.Fatalf("expected no watchers in light mode, got %d", env.source.Watchers())
	}

	for i := 0; i < 5; i++ {
		_ = env.manager.SetTheme(types.SelectionSystem)
		_ = env.manager.SetTheme(types.SelectionSystem)
		if env.source.Watchers() != 1 {
			t.Fatalf("expected exactly 1 watcher in system mode, got %d", env.source.Watchers())
		}
		_ = env.manager.SetTheme(types.SelectionDark)
		if env.source.Watchers() != 0 {
			t.Fatalf("expected 0 watchers after leaving system mode, got %d", env.source.Watchers())
		}
	}

	_ = env.manager.SetTheme(types.SelectionSystem)
	env.manager.Close()
	if env.source.Watchers() != 0 {
		t.Errorf("expected Close to remove the watcher, got %d", env.source.Watchers())
	}
	if err := env.manager.SetTheme(types.SelectionLight); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
}

func TestCorruptStoredValueFallsBack(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = store.Set(DefaultStorageKey, "sepia")

	env := newTestEnv(t, types.ThemeConfig{DefaultTheme: types.SelectionDark}, types.SchemeLight, store)
	if env.manager.Selection() != types.SelectionDark {
		t.Errorf("expected fallback to dark, got %s", env.manager.Selection())
	}
	if env.manager.Stats().CorruptSelections != 1 {
		t.Errorf("expected corrupt counter 1, got %d", env.manager.Stats().CorruptSelections)
	}
}

func TestUnavailableStorage(t *testing.T) {
	store := storage.NewUnavailableStore()
	env := newTestEnv(t, types.ThemeConfig{DefaultTheme: types.SelectionLight}, types.SchemeLight, store)

	if env.manager.Selection() != types.SelectionLight {
		t.Errorf("expected default light, got %s", env.manager.Selection())
	}
	if err := env.manager.SetTheme(types.SelectionMagicalBerg); err != nil {
		t.Fatalf("SetTheme should succeed with unavailable storage: %v", err)
	}
	if env.manager.EffectiveTheme() != types.ThemeMagicalBerg {
		t.Errorf("in-memory state must still update, got %s", env.manager.EffectiveTheme())
	}
	if env.manager.Stats().StorageFailures != 2 {
		t.Errorf("expected 2 storage failures (read and write), got %d", env.manager.Stats().StorageFailures)
	}
}

func TestCustomStorageKey(t *testing.T) {
	store := storage.NewMemoryStore()
	env := newTestEnv(t, types.ThemeConfig{StorageKey: "my-app-theme"}, types.SchemeLight, store)
	_ = env.manager.SetTheme(types.SelectionDark)

	if v, _ := store.Get("my-app-theme"); v != "dark" {
		t.Errorf("expected value under custom key, got %q", v)
	}
	if _, err := store.Get(DefaultStorageKey); !errors.Is(err, storage.ErrNotFound) {
		t.Error("default key must not be written")
	}
}

func TestInvalidInputs(t *testing.T) {
	if _, err := NewManager(nil, types.ThemeConfig{DefaultTheme: "neon"}, nil, nil, nil); err == nil {
		t.Error("expected error for invalid default theme")
	}

	env := newTestEnv(t, types.ThemeConfig{}, types.SchemeLight, nil)
	var invalid *core.InvalidSelectionError
	if err := env.manager.SetTheme("neon"); !errors.As(err, &invalid) {
		t.Errorf("expected InvalidSelectionError, got %v", err)
	}
	if err := env.manager.SetThemeName("schwartz-wald"); err != nil {
		t.Errorf("SetThemeName failed: %v", err)
	}
	if env.manager.Selection() != types.SelectionSchwartzWald {
		t.Errorf("expected schwartz-wald, got %s", env.manager.Selection())
	}
}

func TestNilCollaborators(t *testing.T) {
	m, err := NewManager(nil, types.ThemeConfig{}, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer m.Close()
	if m.EffectiveTheme() != types.ThemeLight {
		t.Errorf("expected light without a source, got %s", m.EffectiveTheme())
	}
	if err := m.SetTheme(types.SelectionDark); err != nil {
		t.Errorf("SetTheme failed: %v", err)
	}
}

func TestRapidFlipsEndConsistent(t *testing.T) {
	env := newTestEnv(t, types.ThemeConfig{}, types.SchemeLight, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				env.source.Set(types.SchemeDark)
			} else {
				env.source.Set(types.SchemeLight)
			}
		}(i)
	}
	wg.Wait()

	// Whatever the interleaving, the root must match the last preference.
	env.source.Set(types.SchemeDark)
	want := env.source.Preference()
	got := env.manager.EffectiveTheme()
	if string(got) != string(want) {
		t.Errorf("effective %s does not match OS preference %s", got, want)
	}
	env.assertOnlyClass(t, string(want))
}

func TestSystemUsesPreferenceReportedBeforeEnteringSystemMode(t *testing.T) {
	var frontend func(...interface{})
	on := func(_ context.Context, _ string, cb func(...interface{})) func() {
		frontend = cb
		return func() { frontend = nil }
	}
	src, err := appearance.NewWailsWithEvents(context.Background(), types.SchemeLight, on)
	if err != nil {
		t.Fatalf("NewWailsWithEvents failed: %v", err)
	}
	defer src.Close()

	store := storage.NewMemoryStore()
	if err := store.Set(DefaultStorageKey, string(types.SelectionMagicalBerg)); err != nil {
		t.Fatal(err)
	}
	root := dom.NewMemoryRoot()
	m, err := NewManager(core.NewAppState(), types.ThemeConfig{}, store, src, dom.NewAdapter(root))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer m.Close()
	if m.Watching() {
		t.Fatal("expected no OS listener outside system mode")
	}

	// The webview reports on load, while nothing is watching.
	frontend("dark")

	if err := m.SetTheme(types.SelectionSystem); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}
	if got := m.EffectiveTheme(); got != types.ThemeDark {
		t.Errorf("expected effective dark, got %s", got)
	}
	if !root.HasClass("dark") {
		t.Errorf("expected root class dark, got %v", root.Classes())
	}
}
