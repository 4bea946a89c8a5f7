package theme

import (
	"fmt"

	"github.com/fluesternde/berggeist-theme/internal/types"
)

// PropertyPrefix prefixes every palette custom property on the root.
const PropertyPrefix = "--theme-"

// MarkerClasses returns the class names that mark the active theme.
func MarkerClasses() []string {
	out := make([]string, len(types.EffectiveThemes))
	for i, t := range types.EffectiveThemes {
		out[i] = string(t)
	}
	return out
}

// PaletteProperties returns the names of the eight palette properties.
func PaletteProperties() []string {
	roles := Roles(types.Palette{})
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = PropertyPrefix + r[0]
	}
	return out
}

// ScaleProperties returns the names of the accent and gray ramp properties.
func ScaleProperties() []string {
	out := make([]string, 0, 24)
	for i := 1; i <= 12; i++ {
		out = append(out, fmt.Sprintf("--accent-%d", i), fmt.Sprintf("--gray-%d", i))
	}
	return out
}

// Describe returns the root state for an effective theme. It performs no
// mutation; appliers carry it out.
func Describe(t types.EffectiveTheme, cfg types.ThemeConfig) types.DOMState {
	state := types.DOMState{
		Theme:               t,
		RemoveClasses:       MarkerClasses(),
		AddClass:            string(t),
		SetProperties:       map[string]string{},
		SuppressTransitions: !cfg.TransitionsEnabled(),
	}

	palette, ok := PaletteFor(t)
	if !ok {
		// Light and dark render from the stylesheet alone.
		state.RemoveProperties = PaletteProperties()
		state.RemoveProperties = append(state.RemoveProperties, ScaleProperties()...)
		return state
	}

	for _, r := range Roles(palette) {
		state.SetProperties[PropertyPrefix+r[0]] = r[1]
	}

	if cfg.ScaleOverrides {
		ramps := scales[t]
		for i := 0; i < 12; i++ {
			state.SetProperties[fmt.Sprintf("--accent-%d", i+1)] = HexToRGB(ramps.Accent[i])
			state.SetProperties[fmt.Sprintf("--gray-%d", i+1)] = HexToRGB(ramps.Gray[i])
		}
	} else {
		state.RemoveProperties = ScaleProperties()
	}
	return state
}
