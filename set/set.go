// Package set implements fuzzy sets with self-memoizing membership caches,
// the universes that group them and the registry that names universes.
package set

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/on-the-ground/fuzzy_ive_go/pure"
)

var (
	// ErrInvalidMembershipUse is returned when a set without a membership function is queried through Check.
	ErrInvalidMembershipUse = errors.New("set has no membership function")

	// ErrInvalidDomainValue is returned for NaN or infinite domain keys.
	ErrInvalidDomainValue = errors.New("domain value must be finite")

	// ErrUnknownUniverse is returned when a universe name is not registered.
	ErrUnknownUniverse = errors.New("unknown universe")

	// ErrUnknownSet is returned when a set name is not registered in its universe.
	ErrUnknownSet = errors.New("unknown set")
)

// MembershipFunc maps a domain value to a membership degree in [0, 1].
// It must be pure: the result is memoized per input.
type MembershipFunc func(x float64) float64

// Point is one cached (domain value, degree) pair.
type Point = pure.Entry[float64, float64]

// Set is a named fuzzy set.
//
// A set built with New memoizes its membership function lazily: Check
// computes a degree once per domain value and commits it to the cache.
// A set built with FromValues is a snapshot whose cache is its whole
// definition; it cannot be queried through Check.
//
// The cache only ever holds strictly positive degrees.
type Set struct {
	name       string
	membership MembershipFunc
	cache      *pure.Table[float64, float64]
}

// New returns a lazily evaluated set backed by membership.
func New(name string, membership MembershipFunc) *Set {
	return &Set{
		name:       name,
		membership: membership,
		cache:      pure.NewTable[float64, float64](nil),
	}
}

// FromValues returns a snapshot set holding the given degrees.
// Entries with non-finite keys or non-positive degrees are dropped.
func FromValues(name string, values map[float64]float64) *Set {
	cache := make(map[float64]float64, len(values))
	for x, degree := range values {
		if isFinite(x) && retained(degree) {
			cache[x] = degree
		}
	}
	return &Set{
		name:  name,
		cache: pure.NewTable(cache),
	}
}

// Empty returns an unnamed snapshot with no entries.
func Empty() *Set {
	return FromValues("", nil)
}

func (s *Set) Name() string { return s.name }

// HasMembership reports whether the set can be queried with Check.
func (s *Set) HasMembership() bool { return s.membership != nil }

// Check returns the membership degree of x, memoizing it in the set's cache.
// Degrees <= 0 are returned but never stored.
func (s *Set) Check(x float64) (float64, error) {
	if s.membership == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMembershipUse, s.name)
	}
	if !isFinite(x) {
		return 0, fmt.Errorf("%w: %v in set %q", ErrInvalidDomainValue, x, s.name)
	}
	degree, _ := s.cache.Memoize(x, s.membership, retained)
	return degree, nil
}

// Degree returns the cached degree of x without evaluating anything.
func (s *Set) Degree(x float64) (float64, bool) {
	return s.cache.Load(x)
}

// Len reports the number of cached entries.
func (s *Set) Len() int { return s.cache.Len() }

// Points returns the cached entries in ascending domain order.
func (s *Set) Points() []Point { return s.cache.Entries() }

// Select copies the cached entries accepted by keep.
func (s *Set) Select(keep func(x, degree float64) bool) map[float64]float64 {
	return s.cache.Select(keep)
}

func (s *Set) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Set { name: %s\ncache: ", s.name)
	for _, p := range s.Points() {
		fmt.Fprintf(&b, "k:%v v:%v\n", p.Key, p.Value)
	}
	b.WriteString("}")
	return b.String()
}

func retained(degree float64) bool { return degree > 0 }

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
