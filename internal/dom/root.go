// Package dom carries out DOMState descriptions against a document root.
package dom

import (
	"sort"
	"sync"
)

// Root is the subset of a document root a theme touches: its class list
// and its inline custom properties.
type Root interface {
	AddClass(name string)
	RemoveClass(name string)
	SetProperty(name, value string)
	RemoveProperty(name string)
}

// MemoryRoot is an in-process Root, used headless and in tests.
type MemoryRoot struct {
	mu         sync.RWMutex
	classes    map[string]bool
	properties map[string]string
}

// NewMemoryRoot creates an empty root.
func NewMemoryRoot() *MemoryRoot {
	return &MemoryRoot{
		classes:    make(map[string]bool),
		properties: make(map[string]string),
	}
}

func (r *MemoryRoot) AddClass(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[name] = true
}

func (r *MemoryRoot) RemoveClass(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.classes, name)
}

func (r *MemoryRoot) SetProperty(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.properties[name] = value
}

func (r *MemoryRoot) RemoveProperty(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.properties, name)
}

// HasClass reports whether the class is present.
func (r *MemoryRoot) HasClass(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classes[name]
}

// Classes returns the class list, sorted.
func (r *MemoryRoot) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.classes))
	for c := range r.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Property returns a custom property value.
func (r *MemoryRoot) Property(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.properties[name]
	return v, ok
}

// Properties returns a copy of all custom properties.
func (r *MemoryRoot) Properties() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.properties))
	for k, v := range r.properties {
		out[k] = v
	}
	return out
}
