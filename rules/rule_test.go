package rules_test

import (
	"testing"

	"github.com/on-the-ground/fuzzy_ive_go/ops"
	"github.com/on-the-ground/fuzzy_ive_go/rules"
	"github.com/on-the-ground/fuzzy_ive_go/set"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule_ComputeFiltersByStrength(t *testing.T) {
	ctx := newContext(t, map[string]float64{"temp": -15})
	rule := rules.NewRule(rules.IsOf("temp", "cold"), "action", "high")
	strength := 25.0 / 30.0

	out, err := rule.Compute(ctx)
	require.NoError(t, err)

	assert.Equal(t, "action: high", out.Name())
	assert.False(t, out.HasMembership())
	// high = triangular(50, 100, 100) sampled on integers: 51..91 stay <= strength
	assert.Equal(t, 41, out.Len())
	for _, p := range out.Points() {
		assert.LessOrEqual(t, p.Value, strength)
		assert.GreaterOrEqual(t, p.Key, 51.0)
		assert.LessOrEqual(t, p.Key, 91.0)
	}

	// the target set is left untouched
	high, err := ctx.Universes.Lookup("action", "high")
	require.NoError(t, err)
	assert.Equal(t, 50, high.Len())
}

func TestRule_ComputeWithMinClip(t *testing.T) {
	ctx := newContext(t, map[string]float64{"temp": -15})
	ctx.Options.Implication = ops.MinClip{}
	rule := rules.NewRule(rules.IsOf("temp", "cold"), "action", "high")
	strength := 25.0 / 30.0

	out, err := rule.Compute(ctx)
	require.NoError(t, err)

	assert.Equal(t, 50, out.Len())
	top, ok := out.Degree(100)
	assert.True(t, ok)
	assert.InDelta(t, strength, top, 1e-12)
}

func TestRule_ComputeOnEmptyTargetCache(t *testing.T) {
	ctx := newContext(t, map[string]float64{"temp": -15})
	rule := rules.NewRule(rules.IsOf("temp", "cold"), "temp", "hot")

	out, err := rule.Compute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "temp: hot", out.Name())
	assert.Equal(t, 0, out.Len())
}

func TestRule_ComputeLookupFailures(t *testing.T) {
	ctx := newContext(t, map[string]float64{"temp": -15})

	_, err := rules.NewRule(rules.IsOf("temp", "cold"), "fan", "fast").Compute(ctx)
	assert.ErrorIs(t, err, set.ErrUnknownUniverse)

	_, err = rules.NewRule(rules.IsOf("temp", "cold"), "action", "off").Compute(ctx)
	assert.ErrorIs(t, err, set.ErrUnknownSet)

	_, err = rules.NewRule(rules.IsOf("wind", "calm"), "action", "low").Compute(ctx)
	assert.ErrorIs(t, err, rules.ErrUnknownVariable)
}

func TestRule_String(t *testing.T) {
	rule := rules.NewRule(rules.IsOf("temp", "cold"), "action", "high")

	assert.Equal(t, "(Rule action:high if:(is temp cold))", rule.String())
	assert.Equal(t, "action: high", rule.Label())
	assert.Equal(t, "action", rule.Universe())
	assert.Equal(t, "high", rule.Set())
}
