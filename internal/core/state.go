// Package core provides shared application state and event handling.
package core

import (
	"context"
	"sync"
	"time"
)

// DefaultStorageTimeout bounds a single read or write against a remote store.
const DefaultStorageTimeout = 5 * time.Second

// DefaultConnectTimeout is the default timeout for connecting to a store.
const DefaultConnectTimeout = 10 * time.Second

// AppState holds the shared application state.
type AppState struct {
	ConfigDir     string          // Config directory path
	Ctx           context.Context // Wails context
	DisableEvents bool            // Disable event emission (for tests)
	Emitter       EventEmitter    // Event emitter for UI notifications

	mu      sync.RWMutex
	started time.Time
}

// NewAppState creates a new AppState.
func NewAppState() *AppState {
	return &AppState{started: time.Now()}
}

// Uptime returns how long the state has existed.
func (s *AppState) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.started)
}

// SetEmitter swaps the event emitter, e.g. once the Wails context is known.
func (s *AppState) SetEmitter(e EventEmitter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Emitter = e
}

// ContextWithTimeout creates a context with the default storage timeout.
func ContextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), DefaultStorageTimeout)
}

// ContextWithConnectTimeout creates a context with the default connect timeout.
func ContextWithConnectTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), DefaultConnectTimeout)
}

// EmitEvent safely emits an event through the emitter.
func (s *AppState) EmitEvent(eventName string, data interface{}) {
	s.mu.RLock()
	emitter := s.Emitter
	s.mu.RUnlock()
	if s.DisableEvents || emitter == nil {
		return
	}
	emitter.Emit(eventName, data)
}
