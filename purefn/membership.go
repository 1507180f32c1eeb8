package purefn

import (
	"math"

	"github.com/on-the-ground/fuzzy_ive_go/set"
)

// Triangular rises linearly from a to the peak b and falls back to zero at c.
// Degenerate edges (a == b or b == c) form a vertical shoulder.
func Triangular(a, b, c float64) set.MembershipFunc {
	return func(x float64) float64 {
		switch {
		case x == b:
			return 1
		case a <= x && x < b:
			return (x - a) / (b - a)
		case b < x && x <= c:
			return (c - x) / (c - b)
		default:
			return 0
		}
	}
}

// Trapezoidal rises from a to b, stays at 1 until c and falls to zero at d.
func Trapezoidal(a, b, c, d float64) set.MembershipFunc {
	return func(x float64) float64 {
		switch {
		case b <= x && x <= c:
			return 1
		case a <= x && x < b:
			return (x - a) / (b - a)
		case c < x && x <= d:
			return (d - x) / (d - c)
		default:
			return 0
		}
	}
}

// Sigmoidal is the logistic curve with the given steepness, crossing 0.5 at midpoint.
func Sigmoidal(steepness, midpoint float64) set.MembershipFunc {
	return func(x float64) float64 {
		return 1 / (1 + math.Exp(-steepness*(x-midpoint)))
	}
}

// Gaussian is a bell curve of the given height centred on center.
func Gaussian(height, center, width float64) set.MembershipFunc {
	return func(x float64) float64 {
		d := x - center
		return height * math.Exp(-(d*d)/(2*width*width))
	}
}
