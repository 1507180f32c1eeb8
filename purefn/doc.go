// Package purefn provides the closed-form functions a fuzzy model is built from.
//
// Membership factories (Triangular, Trapezoidal, Sigmoidal, Gaussian) return
// set.MembershipFunc values. They are pure: no state, no I/O, the same input
// always gives the same degree. That is what lets a set.Set memoize them.
//
// Defuzzifiers (CenterOfMass, MeanOfMaximum) reduce the cached points of an
// aggregated output set to one crisp value.
//
// Example:
//
//	u := set.NewUniverse("temp", -20, -10, 0, 10, 20, 30, 40)
//	u.Register("cold", purefn.Triangular(-20, -20, 10))
//	u.Register("hot", purefn.Triangular(10, 40, 40))
//
// WARNING: Never wrap an impure function (time, I/O, randomness) as a
// membership function; sets cache its first answer forever.
package purefn
