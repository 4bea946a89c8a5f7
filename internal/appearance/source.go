// Package appearance reports the OS light/dark preference and notifies
// watchers when it flips.
package appearance

import (
	"context"
	"io"
	"sync"

	"github.com/fluesternde/berggeist-theme/internal/core"
	"github.com/fluesternde/berggeist-theme/internal/debug"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// Source kinds accepted by New.
const (
	KindAuto     = "auto"
	KindPlatform = "platform"
	KindTerminal = "terminal"
	KindWails    = "wails"
	KindLight    = "light"
	KindDark     = "dark"
)

// Source is an OS color-scheme signal.
type Source interface {
	// Preference returns the current preference.
	Preference() types.ColorScheme
	// Watch registers fn for preference changes. The returned stop function
	// unregisters it and is safe to call more than once.
	Watch(fn func(types.ColorScheme)) (stop func(), err error)
}

// Broadcaster fans a preference out to watchers. On its own it is a manually
// driven source; the platform sources feed it from OS signals.
type Broadcaster struct {
	mu       sync.Mutex
	pref     types.ColorScheme
	watchers map[uint64]func(types.ColorScheme)
	next     uint64

	// activate runs when the first watcher registers and returns the
	// matching deactivate, run when the last one leaves.
	activate   func() (func(), error)
	deactivate func()
	// read, when set, fetches a fresh value in Preference.
	read func() (types.ColorScheme, bool)
}

// NewManual creates a source fixed at pref until Set is called.
func NewManual(pref types.ColorScheme) *Broadcaster {
	return &Broadcaster{pref: normalize(pref), watchers: make(map[uint64]func(types.ColorScheme))}
}

// Preference returns the current preference.
func (b *Broadcaster) Preference() types.ColorScheme {
	if b.read != nil {
		if p, ok := b.read(); ok {
			b.mu.Lock()
			b.pref = p
			b.mu.Unlock()
			return p
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pref
}

// Watch registers fn for preference changes.
func (b *Broadcaster) Watch(fn func(types.ColorScheme)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.watchers) == 0 && b.activate != nil {
		deactivate, err := b.activate()
		if err != nil {
			return nil, err
		}
		b.deactivate = deactivate
	}

	id := b.next
	b.next++
	b.watchers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() { b.unwatch(id) })
	}, nil
}

func (b *Broadcaster) unwatch(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.watchers[id]; !ok {
		return
	}
	delete(b.watchers, id)
	if len(b.watchers) == 0 && b.deactivate != nil {
		b.deactivate()
		b.deactivate = nil
	}
}

// Set records a new preference and notifies watchers if it changed.
// Watchers run after the lock is released so they may call back in.
func (b *Broadcaster) Set(pref types.ColorScheme) {
	pref = normalize(pref)

	b.mu.Lock()
	if pref == b.pref {
		b.mu.Unlock()
		return
	}
	b.pref = pref
	fns := make([]func(types.ColorScheme), 0, len(b.watchers))
	for _, fn := range b.watchers {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	debug.LogAppearance("OS preference changed", map[string]interface{}{
		"preference": string(pref),
		"watchers":   len(fns),
	})
	for _, fn := range fns {
		fn(pref)
	}
}

// Watchers returns the number of live registrations.
func (b *Broadcaster) Watchers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.watchers)
}

func normalize(p types.ColorScheme) types.ColorScheme {
	if p == types.SchemeDark {
		return types.SchemeDark
	}
	return types.SchemeLight
}

// New builds the source named by kind. ctx is the Wails context and is only
// required for KindWails.
func New(ctx context.Context, kind string) (Source, error) {
	switch kind {
	case "", KindAuto:
		src, err := NewPlatform()
		if err != nil {
			debug.Warn(debug.CategoryAppearance, "platform preference unavailable, using terminal", map[string]interface{}{
				"error": err.Error(),
			})
			return NewTerminal(), nil
		}
		return src, nil
	case KindPlatform:
		return NewPlatform()
	case KindTerminal:
		return NewTerminal(), nil
	case KindWails:
		src, err := NewWails(ctx, types.SchemeLight)
		if err != nil {
			return nil, err
		}
		return src, nil
	case KindLight:
		return NewManual(types.SchemeLight), nil
	case KindDark:
		return NewManual(types.SchemeDark), nil
	}
	return nil, &core.InvalidSchemeError{Value: kind}
}

// Close releases src if it holds OS resources.
func Close(src Source) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
