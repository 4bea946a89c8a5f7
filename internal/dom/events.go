package dom

import (
	"github.com/fluesternde/berggeist-theme/internal/core"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// EventApplier hands each DOMState to the webview, whose script performs the
// mutation on document.documentElement.
type EventApplier struct {
	state *core.AppState
}

// NewEventApplier creates an applier emitting through state.
func NewEventApplier(state *core.AppState) *EventApplier {
	return &EventApplier{state: state}
}

// Apply emits the theme:apply event.
func (e *EventApplier) Apply(s types.DOMState) {
	e.state.EmitEvent(core.EventThemeApply, s)
}
