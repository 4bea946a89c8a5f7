package main

import (
	"github.com/fluesternde/berggeist-theme/internal/appearance"
	"github.com/fluesternde/berggeist-theme/internal/debug"
	"github.com/fluesternde/berggeist-theme/internal/dom"
	"github.com/fluesternde/berggeist-theme/internal/theme"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// =============================================================================
// Theme Methods - Thin Facade for Wails Bindings
// =============================================================================

// GetThemeState returns the current selection and what it resolved to.
func (a *App) GetThemeState() ThemeState {
	if a.theme == nil {
		return ThemeState{}
	}
	return a.theme.State()
}

// SetTheme switches to the given selection and persists the choice.
func (a *App) SetTheme(selection string) error {
	if a.theme == nil {
		return errNotReady
	}
	return a.theme.SetThemeName(selection)
}

// GetPalettes returns the palettes of the custom themes.
func (a *App) GetPalettes() []NamedPalette {
	return theme.Palettes()
}

// GetThemeDOMState describes the document root for the effective theme, so
// the frontend can catch up on states applied before it loaded.
func (a *App) GetThemeDOMState() types.DOMState {
	if a.theme == nil {
		return theme.Describe(types.ThemeLight, theme.DefaultConfig())
	}
	return theme.Describe(a.theme.EffectiveTheme(), a.theme.Config())
}

// GetThemeCSS returns a stylesheet for the effective theme, including the
// transition guard rule.
func (a *App) GetThemeCSS() string {
	if a.theme == nil {
		return dom.TransitionGuardCSS
	}
	state := theme.Describe(a.theme.EffectiveTheme(), a.theme.Config())
	return dom.TransitionGuardCSS + dom.RenderCSS(state)
}

// ReportSystemPreference lets the frontend push the OS color scheme through
// a binding instead of the theme:os-preference event.
func (a *App) ReportSystemPreference(pref string) {
	if src, ok := a.source.(*appearance.WailsSource); ok {
		src.Report(pref)
	}
}

// GetMetrics returns runtime and theme statistics.
func (a *App) GetMetrics() *Metrics {
	return a.metrics.GetMetrics()
}

// SetDebugEnabled toggles debug events to the frontend.
func (a *App) SetDebugEnabled(enabled bool) {
	debug.SetEnabled(enabled)
	debug.LogTheme("debug logging toggled", map[string]interface{}{"enabled": enabled})
}

// GetSelections lists the selectable themes in picker order.
func (a *App) GetSelections() []types.Selection {
	return types.Selections
}
