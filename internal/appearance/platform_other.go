//go:build !linux && !darwin && !windows

package appearance

// NewPlatform falls back to the terminal background on other systems.
func NewPlatform() (Source, error) {
	return NewTerminal(), nil
}
