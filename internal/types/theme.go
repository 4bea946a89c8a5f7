// Package types contains the data types shared between the backend services
// and the frontend bindings.
package types

// Selection is the theme the user chose, including the "system" sentinel.
type Selection string

const (
	SelectionLight        Selection = "light"
	SelectionDark         Selection = "dark"
	SelectionMagicalBerg  Selection = "magical-berg"
	SelectionSchwartzWald Selection = "schwartz-wald"
	SelectionSystem       Selection = "system"
)

// Selections lists every valid selection in picker order.
var Selections = []Selection{
	SelectionLight,
	SelectionDark,
	SelectionMagicalBerg,
	SelectionSchwartzWald,
	SelectionSystem,
}

// EffectiveTheme is the concrete theme actually rendered. It is never "system".
type EffectiveTheme string

const (
	ThemeLight        EffectiveTheme = "light"
	ThemeDark         EffectiveTheme = "dark"
	ThemeMagicalBerg  EffectiveTheme = "magical-berg"
	ThemeSchwartzWald EffectiveTheme = "schwartz-wald"
)

// EffectiveThemes lists the concrete themes. Their names double as the
// marker classes placed on the document root.
var EffectiveThemes = []EffectiveTheme{
	ThemeLight,
	ThemeDark,
	ThemeMagicalBerg,
	ThemeSchwartzWald,
}

// ColorScheme is the OS-level light/dark preference.
type ColorScheme string

const (
	SchemeLight ColorScheme = "light"
	SchemeDark  ColorScheme = "dark"
)

// Palette maps the eight semantic color roles to color values.
type Palette struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Muted      string `json:"muted"`
	Border     string `json:"border"`
	Card       string `json:"card"`
}

// NamedPalette pairs a palette with the theme that uses it.
type NamedPalette struct {
	Theme   EffectiveTheme `json:"theme"`
	Label   string         `json:"label"`
	Palette Palette        `json:"palette"`
}

// ThemeConfig holds the optional theme settings. Zero values are replaced
// with defaults by the theme manager.
type ThemeConfig struct {
	DefaultTheme      Selection `json:"defaultTheme" yaml:"default_theme"`
	StorageKey        string    `json:"storageKey" yaml:"storage_key"`
	EnableTransitions *bool     `json:"enableTransitions,omitempty" yaml:"enable_transitions,omitempty"`
	ScaleOverrides    bool      `json:"scaleOverrides" yaml:"scale_overrides"`
}

// TransitionsEnabled reports whether transitions stay active during a swap.
// Unset means enabled.
func (c ThemeConfig) TransitionsEnabled() bool {
	return c.EnableTransitions == nil || *c.EnableTransitions
}

// ThemeState is what consumers read: the raw selection and what it resolved to.
type ThemeState struct {
	Selection      Selection      `json:"selection"`
	EffectiveTheme EffectiveTheme `json:"effectiveTheme"`
}

// DOMState describes how the document root should look for an effective theme.
// Appliers perform the mutation; producing a DOMState has no side effects.
type DOMState struct {
	Theme               EffectiveTheme    `json:"theme"`
	RemoveClasses       []string          `json:"removeClasses"`
	AddClass            string            `json:"addClass"`
	SetProperties       map[string]string `json:"setProperties"`
	RemoveProperties    []string          `json:"removeProperties"`
	SuppressTransitions bool              `json:"suppressTransitions"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend    string `json:"backend" yaml:"backend"` // file, memory, keyring, sqlite, mongo
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	MongoURI   string `json:"mongoUri,omitempty" yaml:"mongo_uri,omitempty"`
	Database   string `json:"database,omitempty" yaml:"database,omitempty"`
	Collection string `json:"collection,omitempty" yaml:"collection,omitempty"`
}

// ThemeStats are counters exposed through the metrics service.
type ThemeStats struct {
	Switches          int64 `json:"switches"`
	PreferenceEvents  int64 `json:"preferenceEvents"`
	ActiveListeners   int   `json:"activeListeners"`
	StorageFailures   int64 `json:"storageFailures"`
	CorruptSelections int64 `json:"corruptSelections"`
}
