package rules

import (
	"fmt"

	"github.com/on-the-ground/fuzzy_ive_go/set"
)

// Rule reads "if Condition then Universe is Set".
type Rule struct {
	condition Expression
	universe  string
	set       string
}

func NewRule(condition Expression, universe, set string) Rule {
	return Rule{
		condition: condition,
		universe:  universe,
		set:       set,
	}
}

func (r Rule) Condition() Expression { return r.condition }

// Universe is the name of the output universe the rule concludes on.
func (r Rule) Universe() string { return r.universe }

// Set is the name of the concluded set within Universe.
func (r Rule) Set() string { return r.set }

// Label names the rule's output set.
func (r Rule) Label() string {
	return fmt.Sprintf("%s: %s", r.universe, r.set)
}

// Compute fires the rule: it evaluates the condition to a firing strength,
// then applies the cycle's implication to every degree currently cached in
// the target set. The result is a new snapshot set named by Label; an empty
// target cache yields an empty result.
func (r Rule) Compute(ctx *Context) (*set.Set, error) {
	_, out, err := r.fire(ctx)
	return out, err
}

func (r Rule) fire(ctx *Context) (float64, *set.Set, error) {
	strength, err := r.condition.Eval(ctx)
	if err != nil {
		return 0, nil, err
	}
	target, err := ctx.Universes.Lookup(r.universe, r.set)
	if err != nil {
		return 0, nil, err
	}

	implication := ctx.Options.Implies()
	values := make(map[float64]float64, target.Len())
	for _, p := range target.Points() {
		if degree, ok := implication.Imply(p.Value, strength); ok {
			values[p.Key] = degree
		}
	}
	return strength, set.FromValues(r.Label(), values), nil
}

func (r Rule) String() string {
	return fmt.Sprintf("(Rule %s:%s if:%s)", r.universe, r.set, r.condition)
}
