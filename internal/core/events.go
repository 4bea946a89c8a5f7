package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Event names shared with the frontend.
const (
	EventThemeChanged = "theme:changed"
	EventThemeApply   = "theme:apply"
	EventOSPreference = "theme:os-preference"
	EventDebugLog     = "debug:log"
)

// EventEmitter defines the interface for emitting events to the UI.
type EventEmitter interface {
	Emit(eventName string, data interface{})
}

// WailsEventEmitter emits events using the Wails runtime.
type WailsEventEmitter struct {
	Ctx context.Context
}

// Emit sends an event to the frontend via Wails runtime.
func (e *WailsEventEmitter) Emit(eventName string, data interface{}) {
	if e.Ctx != nil {
		runtime.EventsEmit(e.Ctx, eventName, data)
	}
}

// NoopEventEmitter is a no-op event emitter for testing.
type NoopEventEmitter struct{}

// Emit does nothing (used for tests).
func (e *NoopEventEmitter) Emit(eventName string, data interface{}) {}

// Event is a single emission captured by RecordingEmitter.
type Event struct {
	Name string
	Data interface{}
}

// RecordingEmitter keeps every emitted event in memory.
type RecordingEmitter struct {
	mu     sync.Mutex
	events []Event
}

// Emit records the event.
func (e *RecordingEmitter) Emit(eventName string, data interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, Event{Name: eventName, Data: data})
}

// Events returns a copy of the recorded events, optionally filtered by name.
func (e *RecordingEmitter) Events(name string) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []Event
	for _, ev := range e.events {
		if name == "" || ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

// =============================================================================
// Custom Error Types
// =============================================================================

// InvalidSelectionError indicates a theme name outside the known set.
type InvalidSelectionError struct {
	Value string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid theme selection: %q", e.Value)
}

// InvalidSchemeError indicates a color scheme other than light or dark.
type InvalidSchemeError struct {
	Value string
}

func (e *InvalidSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme: %q", e.Value)
}

// UnknownBackendError indicates a storage backend name that is not supported.
type UnknownBackendError struct {
	Backend string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown storage backend: %s", e.Backend)
}
