//go:build darwin || windows

package appearance

import (
	"time"

	"github.com/fluesternde/berggeist-theme/internal/types"
)

const pollInterval = 2 * time.Second

// PollSource samples an OS setting on a ticker while it is watched.
type PollSource struct {
	*Broadcaster
	detect func() types.ColorScheme
}

func newPollSource(detect func() types.ColorScheme) *PollSource {
	s := &PollSource{Broadcaster: NewManual(detect()), detect: detect}
	s.activate = s.start
	s.read = func() (types.ColorScheme, bool) { return s.detect(), true }
	return s
}

func (s *PollSource) start() (func(), error) {
	ticker := time.NewTicker(pollInterval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.Set(s.detect())
			}
		}
	}()
	return func() { close(done) }, nil
}
