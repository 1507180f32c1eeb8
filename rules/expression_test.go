package rules_test

import (
	"testing"

	"github.com/on-the-ground/fuzzy_ive_go/ops"
	"github.com/on-the-ground/fuzzy_ive_go/rules"
	"github.com/on-the-ground/fuzzy_ive_go/set"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs_EvalChecksAndCaches(t *testing.T) {
	ctx := newContext(t, map[string]float64{"temp": -15})

	degree, err := rules.IsOf("temp", "cold").Eval(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 25.0/30.0, degree, 1e-12)

	cold, err := ctx.Universes.Lookup("temp", "cold")
	require.NoError(t, err)
	cached, ok := cold.Degree(-15)
	assert.True(t, ok)
	assert.Equal(t, degree, cached)
}

func TestIs_LookupFailures(t *testing.T) {
	ctx := newContext(t, map[string]float64{"temp": 5, "pressure": 1})

	_, err := rules.IsOf("wind", "calm").Eval(ctx)
	assert.ErrorIs(t, err, rules.ErrUnknownVariable)

	_, err = rules.IsOf("pressure", "high").Eval(ctx)
	assert.ErrorIs(t, err, set.ErrUnknownUniverse)

	_, err = rules.IsOf("temp", "freezing").Eval(ctx)
	assert.ErrorIs(t, err, set.ErrUnknownSet)
}

func TestConnectives(t *testing.T) {
	ctx := newContext(t, map[string]float64{"temp": 20, "humidity": 55})
	hot := rules.IsOf("temp", "hot")     // 1/3
	wet := rules.IsOf("humidity", "wet") // 0.5

	cases := []struct {
		name string
		expr rules.Expression
		want float64
	}{
		{"and", rules.AndOf(hot, wet), 1.0 / 3.0},
		{"or", rules.OrOf(hot, wet), 0.5},
		{"not", rules.NotOf(wet), 0.5},
		{"nested", rules.NotOf(rules.AndOf(hot, rules.NotOf(wet))), 2.0 / 3.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.expr.Eval(ctx)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestConnectives_EvaluateBothBranches(t *testing.T) {
	ctx := newContext(t, map[string]float64{"temp": -15, "humidity": 10})
	ctx.Options.Logic = ops.Product{}

	_, err := rules.OrOf(rules.IsOf("temp", "cold"), rules.IsOf("humidity", "dry")).Eval(ctx)
	require.NoError(t, err)

	for _, name := range [][2]string{{"temp", "cold"}, {"humidity", "dry"}} {
		s, err := ctx.Universes.Lookup(name[0], name[1])
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len(), name)
	}
}

func TestConnectives_PropagateErrors(t *testing.T) {
	ctx := newContext(t, map[string]float64{"temp": 5})

	_, err := rules.AndOf(rules.IsOf("temp", "cold"), rules.IsOf("humidity", "wet")).Eval(ctx)
	assert.ErrorIs(t, err, rules.ErrUnknownVariable)

	_, err = rules.NotOf(rules.IsOf("temp", "boiling")).Eval(ctx)
	assert.ErrorIs(t, err, set.ErrUnknownSet)
}

func TestExpression_String(t *testing.T) {
	expr := rules.NotOf(rules.AndOf(
		rules.IsOf("temp", "hot"),
		rules.OrOf(rules.IsOf("humidity", "wet"), rules.IsOf("temp", "mild")),
	))
	assert.Equal(t, "(not (and (is temp hot) (or (is humidity wet) (is temp mild))))", expr.String())
}
