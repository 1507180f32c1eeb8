package ops

import (
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/on-the-ground/fuzzy_ive_go/set"
)

var (
	_ SetOps = MaxUnion{}
	_ SetOps = ProbabilisticUnion{}

	_ Implication = ThresholdFilter{}
	_ Implication = MinClip{}
)

// LabelSeparator joins the names of sets merged by a union.
const LabelSeparator = " | "

// MaxUnion keeps the larger degree per domain value.
type MaxUnion struct{}

func (MaxUnion) Union(a, b *set.Set) *set.Set {
	return merge(a, b, math.Max)
}

// ProbabilisticUnion combines degrees with the probabilistic sum a+b-ab.
type ProbabilisticUnion struct{}

func (ProbabilisticUnion) Union(a, b *set.Set) *set.Set {
	return merge(a, b, func(x, y float64) float64 { return x + y - x*y })
}

// merge applies combine where both sets hold a value and copies the rest.
func merge(a, b *set.Set, combine func(x, y float64) float64) *set.Set {
	values := make(map[float64]float64, a.Len()+b.Len())
	for _, p := range a.Points() {
		values[p.Key] = p.Value
	}
	for _, p := range b.Points() {
		if v, ok := values[p.Key]; ok {
			values[p.Key] = combine(v, p.Value)
		} else {
			values[p.Key] = p.Value
		}
	}
	return set.FromValues(UnionLabel(a.Name(), b.Name()), values)
}

// UnionLabel names the union of two sets: the sorted, de-duplicated labels
// of both sides joined by LabelSeparator. It is commutative and associative,
// and the empty name is its identity.
func UnionLabel(a, b string) string {
	labels := make(map[string]struct{})
	for _, name := range []string{a, b} {
		if name == "" {
			continue
		}
		for _, l := range strings.Split(name, LabelSeparator) {
			labels[l] = struct{}{}
		}
	}
	return strings.Join(slices.Sorted(maps.Keys(labels)), LabelSeparator)
}

// ThresholdFilter keeps a cached degree only when it does not exceed the
// firing strength, leaving it unchanged. Larger degrees are dropped rather
// than lowered to the strength.
type ThresholdFilter struct{}

func (ThresholdFilter) Imply(degree, strength float64) (float64, bool) {
	return degree, degree <= strength
}

// MinClip lowers every cached degree to at most the firing strength
// (Mamdani implication). Degrees clipped to zero are dropped.
type MinClip struct{}

func (MinClip) Imply(degree, strength float64) (float64, bool) {
	clipped := math.Min(degree, strength)
	return clipped, clipped > 0
}
