package appearance

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fluesternde/berggeist-theme/internal/types"
)

// NewTerminal detects the preference once from the terminal background.
// Terminals do not signal background changes, so watchers never fire.
func NewTerminal() *Broadcaster {
	if lipgloss.HasDarkBackground() {
		return NewManual(types.SchemeDark)
	}
	return NewManual(types.SchemeLight)
}
