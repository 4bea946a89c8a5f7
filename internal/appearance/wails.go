package appearance

import (
	"context"
	"errors"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/fluesternde/berggeist-theme/internal/core"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// EventsOnFunc matches runtime.EventsOn.
type EventsOnFunc func(ctx context.Context, eventName string, callback func(optionalData ...interface{})) func()

// WailsSource follows the webview's prefers-color-scheme media query. The
// frontend posts "light" or "dark" on the theme:os-preference event.
//
// The subscription lives as long as the source, so the preference stays
// current while nobody watches it.
type WailsSource struct {
	*Broadcaster

	once   sync.Once
	cancel func()
}

// NewWails creates a source seeded with initial until the frontend reports.
// ctx must be the Wails runtime context.
func NewWails(ctx context.Context, initial types.ColorScheme) (*WailsSource, error) {
	return NewWailsWithEvents(ctx, initial, runtime.EventsOn)
}

// NewWailsWithEvents is NewWails with the event subscription supplied by the
// caller.
func NewWailsWithEvents(ctx context.Context, initial types.ColorScheme, on EventsOnFunc) (*WailsSource, error) {
	if ctx == nil {
		return nil, errors.New("wails preference source has no context")
	}
	s := &WailsSource{Broadcaster: NewManual(initial)}
	s.cancel = on(ctx, core.EventOSPreference, func(data ...interface{}) {
		if len(data) == 0 {
			return
		}
		if v, ok := data[0].(string); ok {
			s.Set(types.ColorScheme(v))
		}
	})
	return s, nil
}

// Report feeds a preference reported through a bound method rather than an
// event.
func (s *WailsSource) Report(pref string) {
	s.Set(types.ColorScheme(pref))
}

// Close drops the event subscription.
func (s *WailsSource) Close() error {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
	return nil
}
