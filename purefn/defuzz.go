package purefn

import (
	"math"

	"github.com/on-the-ground/fuzzy_ive_go/set"
)

// CenterOfMass returns the degree-weighted mean of the set's cached domain
// values. An empty set yields NaN.
//
// Points are summed in ascending key order so the result is reproducible.
func CenterOfMass(s *set.Set) float64 {
	var sum, weighted float64
	for _, p := range s.Points() {
		sum += p.Value
		weighted += p.Key * p.Value
	}
	if sum == 0 {
		return math.NaN()
	}
	return weighted / sum
}

// MeanOfMaximum returns the mean of the domain values that share the highest
// cached degree. An empty set yields NaN.
func MeanOfMaximum(s *set.Set) float64 {
	best := math.Inf(-1)
	var sum float64
	var n int
	for _, p := range s.Points() {
		switch {
		case p.Value > best:
			best, sum, n = p.Value, p.Key, 1
		case p.Value == best:
			sum += p.Key
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
