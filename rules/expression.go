package rules

import "fmt"

// Expression is a condition tree node. The set of node kinds is closed:
// Is, And, Or and Not.
//
// Eval returns a degree in [0, 1]. It commits membership degrees to the
// caches of the sets it tests.
type Expression interface {
	Eval(ctx *Context) (float64, error)
	String() string
	sealedExpression()
}

var (
	_ Expression = Is{}
	_ Expression = And{}
	_ Expression = Or{}
	_ Expression = Not{}
)

func IsOf(variable, set string) Expression {
	return Is{Variable: variable, Set: set}
}

func AndOf(left, right Expression) Expression {
	return And{Left: left, Right: right}
}

func OrOf(left, right Expression) Expression {
	return Or{Left: left, Right: right}
}

func NotOf(expr Expression) Expression {
	return Not{Expr: expr}
}

// Is tests the current value of Variable against Set of the universe named
// after the variable.
type Is struct {
	Variable string
	Set      string
}

func (Is) sealedExpression() {}

func (e Is) Eval(ctx *Context) (float64, error) {
	value, err := ctx.Value(e.Variable)
	if err != nil {
		return 0, err
	}
	s, err := ctx.Universes.Lookup(e.Variable, e.Set)
	if err != nil {
		return 0, err
	}
	return s.Check(value)
}

func (e Is) String() string {
	return fmt.Sprintf("(is %s %s)", e.Variable, e.Set)
}

// And evaluates both operands, then combines them with the logic And.
type And struct {
	Left, Right Expression
}

func (And) sealedExpression() {}

func (e And) Eval(ctx *Context) (float64, error) {
	l, r, err := evalBoth(ctx, e.Left, e.Right)
	if err != nil {
		return 0, err
	}
	return ctx.Options.Logic.And(l, r), nil
}

func (e And) String() string {
	return fmt.Sprintf("(and %s %s)", e.Left, e.Right)
}

// Or evaluates both operands, then combines them with the logic Or.
type Or struct {
	Left, Right Expression
}

func (Or) sealedExpression() {}

func (e Or) Eval(ctx *Context) (float64, error) {
	l, r, err := evalBoth(ctx, e.Left, e.Right)
	if err != nil {
		return 0, err
	}
	return ctx.Options.Logic.Or(l, r), nil
}

func (e Or) String() string {
	return fmt.Sprintf("(or %s %s)", e.Left, e.Right)
}

// Not complements its operand with the logic Not.
type Not struct {
	Expr Expression
}

func (Not) sealedExpression() {}

func (e Not) Eval(ctx *Context) (float64, error) {
	v, err := e.Expr.Eval(ctx)
	if err != nil {
		return 0, err
	}
	return ctx.Options.Logic.Not(v), nil
}

func (e Not) String() string {
	return fmt.Sprintf("(not %s)", e.Expr)
}

// evalBoth never short-circuits, so both branches always populate their caches.
func evalBoth(ctx *Context, left, right Expression) (float64, float64, error) {
	l, err := left.Eval(ctx)
	if err != nil {
		return 0, 0, err
	}
	r, err := right.Eval(ctx)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

// validate reports nil operands anywhere in the tree.
func validate(expr Expression) error {
	switch e := expr.(type) {
	case nil:
		return fmt.Errorf("%w: nil expression", ErrConfiguration)
	case Is:
		return nil
	case And:
		return validatePair(e.Left, e.Right)
	case Or:
		return validatePair(e.Left, e.Right)
	case Not:
		return validate(e.Expr)
	default:
		return fmt.Errorf("%w: unsupported expression %T", ErrConfiguration, expr)
	}
}

func validatePair(left, right Expression) error {
	if err := validate(left); err != nil {
		return err
	}
	return validate(right)
}
