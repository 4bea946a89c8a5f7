//go:build windows
// +build windows

package appearance

import (
	"os/exec"
	"strings"

	"github.com/fluesternde/berggeist-theme/internal/types"
)

const personalizeKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`

// NewPlatform polls the AppsUseLightTheme registry value.
func NewPlatform() (Source, error) {
	return newPollSource(detectWindows), nil
}

func detectWindows() types.ColorScheme {
	out, err := exec.Command("reg", "query", personalizeKey, "/v", "AppsUseLightTheme").Output()
	if err != nil {
		return types.SchemeLight
	}
	return parseRegQuery(string(out))
}

// parseRegQuery reads the REG_DWORD line; 0x0 means apps use the dark theme.
func parseRegQuery(out string) types.ColorScheme {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 3 && fields[0] == "AppsUseLightTheme" {
			if fields[2] == "0x0" {
				return types.SchemeDark
			}
			return types.SchemeLight
		}
	}
	return types.SchemeLight
}
