// Package theme resolves theme selections, describes the resulting root
// state and owns the persisted selection.
package theme

import (
	"github.com/fluesternde/berggeist-theme/internal/core"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// ParseSelection validates a raw string against the known selections.
func ParseSelection(s string) (types.Selection, error) {
	sel := types.Selection(s)
	if !ValidSelection(sel) {
		return "", &core.InvalidSelectionError{Value: s}
	}
	return sel, nil
}

// ValidSelection returns true if sel is one of the five known selections.
func ValidSelection(sel types.Selection) bool {
	for _, s := range types.Selections {
		if s == sel {
			return true
		}
	}
	return false
}

// ParseScheme validates an OS color-scheme string.
func ParseScheme(s string) (types.ColorScheme, error) {
	switch types.ColorScheme(s) {
	case types.SchemeLight, types.SchemeDark:
		return types.ColorScheme(s), nil
	}
	return "", &core.InvalidSchemeError{Value: s}
}

// Resolve maps a selection to the theme that is rendered. Concrete
// selections map to themselves; "system" follows the OS preference.
func Resolve(sel types.Selection, os types.ColorScheme) (types.EffectiveTheme, error) {
	switch sel {
	case types.SelectionLight, types.SelectionDark,
		types.SelectionMagicalBerg, types.SelectionSchwartzWald:
		return types.EffectiveTheme(sel), nil
	case types.SelectionSystem:
		if os == types.SchemeDark {
			return types.ThemeDark, nil
		}
		return types.ThemeLight, nil
	}
	return "", &core.InvalidSelectionError{Value: string(sel)}
}

// Next returns the selection after sel in picker order, wrapping around.
func Next(sel types.Selection) types.Selection {
	for i, s := range types.Selections {
		if s == sel {
			return types.Selections[(i+1)%len(types.Selections)]
		}
	}
	return types.Selections[0]
}
