package set

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry holds universes by name.
//
// Registry and universe maps are guarded for concurrent lookups, but callers
// must not add universes or sets while a computation cycle is running.
type Registry struct {
	mu        sync.RWMutex
	universes map[string]*Universe
}

// NewRegistry returns a registry holding the given universes.
// When two share a name the first one is kept.
func NewRegistry(universes ...*Universe) *Registry {
	r := &Registry{universes: make(map[string]*Universe, len(universes))}
	for _, u := range universes {
		r.Add(u)
	}
	return r
}

// Add registers u unless a universe with the same name exists.
func (r *Registry) Add(u *Universe) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.universes[u.Name()]; ok {
		return false
	}
	r.universes[u.Name()] = u
	return true
}

func (r *Registry) Universe(name string) (*Universe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.universes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUniverse, name)
	}
	return u, nil
}

// Lookup resolves a set by universe and set name.
func (r *Registry) Lookup(universe, name string) (*Set, error) {
	u, err := r.Universe(universe)
	if err != nil {
		return nil, err
	}
	return u.Set(name)
}

// Names returns the registered universe names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.universes))
}
