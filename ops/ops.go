// Package ops defines the pluggable operator tables an inference cycle runs
// with: fuzzy logic connectives, set union, rule implication and
// defuzzification.
package ops

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/fuzzy_ive_go/set"
)

// ErrMissingOperator is returned by Options.Validate when a required strategy is nil.
var ErrMissingOperator = errors.New("missing operator")

// LogicOps combines membership degrees in [0, 1].
type LogicOps interface {
	And(a, b float64) float64
	Or(a, b float64) float64
	Not(a float64) float64
}

// SetOps merges two rule outputs.
//
// Union must be commutative and associative: the parallel rule set folds
// results in completion order.
type SetOps interface {
	Union(a, b *set.Set) *set.Set
}

// Defuzzifier reduces an aggregated output set to a crisp value.
type Defuzzifier interface {
	Defuzzify(s *set.Set) float64
}

// Implication decides which cached degree of a rule's target set survives
// a firing strength, and at what value.
type Implication interface {
	Imply(degree, strength float64) (float64, bool)
}

// DefuzzFunc adapts a plain function such as purefn.CenterOfMass to Defuzzifier.
type DefuzzFunc func(s *set.Set) float64

func (f DefuzzFunc) Defuzzify(s *set.Set) float64 { return f(s) }

// Options is the operator table for one computation cycle.
// It must not change while a cycle is running.
type Options struct {
	Logic  LogicOps
	Sets   SetOps
	Defuzz Defuzzifier
	// Implication defaults to ThresholdFilter when nil.
	Implication Implication
}

func (o Options) Validate() error {
	switch {
	case o.Logic == nil:
		return fmt.Errorf("%w: logic operators", ErrMissingOperator)
	case o.Sets == nil:
		return fmt.Errorf("%w: set operators", ErrMissingOperator)
	case o.Defuzz == nil:
		return fmt.Errorf("%w: defuzzifier", ErrMissingOperator)
	}
	return nil
}

// Implies returns the configured implication, falling back to ThresholdFilter.
func (o Options) Implies() Implication {
	if o.Implication == nil {
		return ThresholdFilter{}
	}
	return o.Implication
}
