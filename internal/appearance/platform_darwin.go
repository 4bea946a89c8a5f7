//go:build darwin
// +build darwin

package appearance

import (
	"os/exec"
	"strings"

	"github.com/fluesternde/berggeist-theme/internal/types"
)

// NewPlatform polls the global AppleInterfaceStyle default.
func NewPlatform() (Source, error) {
	return newPollSource(detectDarwin), nil
}

// detectDarwin reads AppleInterfaceStyle, which only exists in dark mode.
func detectDarwin() types.ColorScheme {
	out, err := exec.Command("defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		return types.SchemeLight
	}
	if strings.EqualFold(strings.TrimSpace(string(out)), "dark") {
		return types.SchemeDark
	}
	return types.SchemeLight
}
