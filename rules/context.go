// Package rules evaluates fuzzy rule bases.
//
// A Rule binds a condition Expression (built from Is, And, Or and Not
// nodes) to a target set of an output universe. A RuleSet aggregates the
// outputs of all its rules with the union operator of the cycle's
// ops.Options, either sequentially or on a worker pool.
package rules

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/fuzzy_ive_go/ops"
	"github.com/on-the-ground/fuzzy_ive_go/set"
)

var (
	// ErrUnknownVariable is returned when an expression names a variable with no current value.
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrConfiguration is returned for rule sets that cannot be evaluated.
	ErrConfiguration = errors.New("invalid rule configuration")

	// ErrWorkerPanic is returned when a rule panics on the worker pool.
	ErrWorkerPanic = errors.New("rule evaluation panicked")
)

// Context is the view of one computation cycle.
//
// Values and Options are read-only during the cycle. Universes is shared and
// mutated only through set cache memoization.
type Context struct {
	Values    map[string]float64
	Universes *set.Registry
	Options   *ops.Options
}

// Value returns the current value of variable.
func (c *Context) Value(variable string) (float64, error) {
	v, ok := c.Values[variable]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariable, variable)
	}
	return v, nil
}
