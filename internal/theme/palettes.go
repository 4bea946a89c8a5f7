package theme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/fluesternde/berggeist-theme/internal/types"
)

// magicalBerg is inspired by Zell am See: azure lakes and snow-capped peaks.
var magicalBerg = types.Palette{
	Background: "#e8f0f8",
	Foreground: "#1a365d",
	Primary:    "#2b6cb0",
	Secondary:  "#d2e8f5",
	Accent:     "#5a8fc4",
	Muted:      "#a0aec0",
	Border:     "#9abfde",
	Card:       "#f8fbfd",
}

// schwartzWald is inspired by the Black Forest: deep greens and autumn gold.
var schwartzWald = types.Palette{
	Background: "#1a1f1a",
	Foreground: "#e8f5e9",
	Primary:    "#5d7a5d",
	Secondary:  "#3d4a3d",
	Accent:     "#c17817",
	Muted:      "#4a5d4a",
	Border:     "#5d7a5d",
	Card:       "#243324",
}

// MagicalBerg returns the Magical Berg palette.
func MagicalBerg() types.Palette { return magicalBerg }

// SchwartzWald returns the Schwartz Wald palette.
func SchwartzWald() types.Palette { return schwartzWald }

// Scale is a 12-step color ramp, lightest to darkest for light palettes.
type Scale [12]string

// scales holds the accent and gray ramps written over the component library
// defaults when scale overrides are enabled.
var scales = map[types.EffectiveTheme]struct{ Accent, Gray Scale }{
	types.ThemeMagicalBerg: {
		Accent: Scale{"#f0f7ff", "#e0f0ff", "#c7e3ff", "#a5d4ff", "#80c2ff", "#5aadff",
			"#3894e6", "#1e78cc", "#0d5ca6", "#0a4d8a", "#073d6e", "#042d52"},
		Gray: Scale{"#fcfcfc", "#f8f9fa", "#f1f3f5", "#e9ecef", "#dee2e6", "#cbd5e0",
			"#a0aec0", "#718096", "#4a5568", "#2d3748", "#1a202c", "#171923"},
	},
	types.ThemeSchwartzWald: {
		Accent: Scale{"#0e1410", "#121917", "#1a2520", "#22322a", "#2d4034", "#3b5040",
			"#4d6650", "#668066", "#2d5016", "#3d6a1f", "#c1e5c1", "#e8f5e9"},
		Gray: Scale{"#0e100e", "#141714", "#1a1f1a", "#212821", "#2a332a", "#364036",
			"#475447", "#5d705d", "#8b9d8b", "#a3b5a3", "#c1d4c1", "#e8f5e9"},
	},
}

var labels = map[types.Selection]string{
	types.SelectionLight:        "Light",
	types.SelectionDark:         "Dark",
	types.SelectionMagicalBerg:  "Magical Berg",
	types.SelectionSchwartzWald: "Schwartz Wald",
	types.SelectionSystem:       "System",
}

// Label returns the display name of a selection.
func Label(sel types.Selection) string {
	if l, ok := labels[sel]; ok {
		return l
	}
	return string(sel)
}

// PaletteFor returns the custom palette for a theme. Light and dark have none.
func PaletteFor(t types.EffectiveTheme) (types.Palette, bool) {
	switch t {
	case types.ThemeMagicalBerg:
		return magicalBerg, true
	case types.ThemeSchwartzWald:
		return schwartzWald, true
	}
	return types.Palette{}, false
}

// Palettes returns the registered custom palettes.
func Palettes() []types.NamedPalette {
	return []types.NamedPalette{
		{Theme: types.ThemeMagicalBerg, Label: Label(types.SelectionMagicalBerg), Palette: magicalBerg},
		{Theme: types.ThemeSchwartzWald, Label: Label(types.SelectionSchwartzWald), Palette: schwartzWald},
	}
}

// Roles returns the palette as role/value pairs in canonical order.
func Roles(p types.Palette) [][2]string {
	return [][2]string{
		{"background", p.Background},
		{"foreground", p.Foreground},
		{"primary", p.Primary},
		{"secondary", p.Secondary},
		{"accent", p.Accent},
		{"muted", p.Muted},
		{"border", p.Border},
		{"card", p.Card},
	}
}

// HexToRGB converts "#rrggbb" to the space-separated "R G B" form used by the
// component library's color variables. Unparseable input yields "0 0 0".
func HexToRGB(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "0 0 0"
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("%d %d %d", r, g, b)
}
