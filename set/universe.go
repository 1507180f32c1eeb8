package set

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Universe groups the fuzzy sets defined over one variable's domain.
//
// The domain is advisory: it is used by Sample and for inspection, and is
// not enforced against the sets' own bounds.
type Universe struct {
	name string

	mu     sync.RWMutex
	domain []float64
	sets   map[string]*Set
}

// NewUniverse returns an empty universe over the given sample points.
func NewUniverse(name string, domain ...float64) *Universe {
	return &Universe{
		name:   name,
		domain: slices.Clone(domain),
		sets:   make(map[string]*Set),
	}
}

func (u *Universe) Name() string { return u.name }

// SetDomain replaces the advisory sample points.
func (u *Universe) SetDomain(domain []float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.domain = slices.Clone(domain)
}

// Domain returns a copy of the sample points.
func (u *Universe) Domain() []float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Clone(u.domain)
}

// Register adds a set named name unless one already exists.
// The first registration wins; the return value reports whether this one did.
func (u *Universe) Register(name string, membership MembershipFunc) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.sets[name]; ok {
		return false
	}
	u.sets[name] = New(name, membership)
	return true
}

// Set looks up a registered set.
func (u *Universe) Set(name string) (*Set, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	s, ok := u.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in universe %q", ErrUnknownSet, name, u.name)
	}
	return s, nil
}

// SetNames returns the registered set names in sorted order.
func (u *Universe) SetNames() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Sorted(maps.Keys(u.sets))
}

// MembershipsAt checks x against every registered set.
// It is meant for inspection, and populates the caches as a side effect.
func (u *Universe) MembershipsAt(x float64) (map[string]float64, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make(map[string]float64, len(u.sets))
	for name, s := range u.sets {
		degree, err := s.Check(x)
		if err != nil {
			return nil, err
		}
		out[name] = degree
	}
	return out, nil
}

// Sample checks every domain point against every set, filling the caches
// that rule outputs are filtered from.
func (u *Universe) Sample() error {
	for _, x := range u.Domain() {
		if _, err := u.MembershipsAt(x); err != nil {
			return err
		}
	}
	return nil
}
