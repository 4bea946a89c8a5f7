package dom

import (
	"sort"
	"sync"
	"time"

	"github.com/fluesternde/berggeist-theme/internal/debug"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// NoTransitionsClass disables CSS transitions while present on the root.
const NoTransitionsClass = "theme-no-transitions"

// FrameDelay approximates one rendering frame.
const FrameDelay = 16 * time.Millisecond

// Applier carries out a DOMState.
type Applier interface {
	Apply(state types.DOMState)
}

// Adapter applies DOMStates to a Root.
type Adapter struct {
	root  Root
	delay time.Duration
	after func(d time.Duration, f func())

	mu  sync.Mutex
	gen uint64
}

// NewAdapter creates an adapter mutating root.
func NewAdapter(root Root) *Adapter {
	return &Adapter{
		root:  root,
		delay: FrameDelay,
		after: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Apply swaps the marker class and custom properties. When the state asks
// for it, transitions are off from before the swap until one frame after.
// Restores are fire-and-forget; a restore scheduled by an older Apply is
// dropped if a newer Apply suppressed transitions again.
func (a *Adapter) Apply(state types.DOMState) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if state.SuppressTransitions {
		a.gen++
		a.root.AddClass(NoTransitionsClass)
	}

	for _, c := range state.RemoveClasses {
		a.root.RemoveClass(c)
	}
	a.root.AddClass(state.AddClass)

	for _, p := range state.RemoveProperties {
		a.root.RemoveProperty(p)
	}
	names := make([]string, 0, len(state.SetProperties))
	for name := range state.SetProperties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a.root.SetProperty(name, state.SetProperties[name])
	}

	debug.LogDOM("applied theme", map[string]interface{}{
		"theme":      string(state.Theme),
		"set":        len(names),
		"removed":    len(state.RemoveProperties),
		"suppressed": state.SuppressTransitions,
	})

	if state.SuppressTransitions {
		gen := a.gen
		a.after(a.delay, func() { a.restoreTransitions(gen) })
	}
}

func (a *Adapter) restoreTransitions(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		return
	}
	a.root.RemoveClass(NoTransitionsClass)
}

// Multi applies a state to several appliers in order.
type Multi []Applier

// Apply forwards state to every applier.
func (m Multi) Apply(state types.DOMState) {
	for _, a := range m {
		a.Apply(state)
	}
}
