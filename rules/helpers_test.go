package rules_test

import (
	"testing"

	"github.com/on-the-ground/fuzzy_ive_go/ops"
	"github.com/on-the-ground/fuzzy_ive_go/purefn"
	"github.com/on-the-ground/fuzzy_ive_go/rules"
	"github.com/on-the-ground/fuzzy_ive_go/set"
	"github.com/stretchr/testify/require"
)

func domain(from, to, step float64) []float64 {
	var out []float64
	for x := from; x <= to; x += step {
		out = append(out, x)
	}
	return out
}

// newThermostat builds temp/humidity inputs and a sampled action output.
func newThermostat(t *testing.T) *set.Registry {
	t.Helper()

	temp := set.NewUniverse("temp", domain(-20, 40, 1)...)
	temp.Register("cold", purefn.Triangular(-20, -20, 10))
	temp.Register("mild", purefn.Triangular(0, 15, 30))
	temp.Register("hot", purefn.Triangular(10, 40, 40))

	humidity := set.NewUniverse("humidity", domain(0, 100, 5)...)
	humidity.Register("dry", purefn.Trapezoidal(0, 0, 20, 50))
	humidity.Register("wet", purefn.Trapezoidal(40, 70, 100, 100))

	action := set.NewUniverse("action", domain(0, 100, 1)...)
	action.Register("low", purefn.Triangular(0, 0, 50))
	action.Register("medium", purefn.Triangular(25, 50, 75))
	action.Register("high", purefn.Triangular(50, 100, 100))
	require.NoError(t, action.Sample())

	return set.NewRegistry(temp, humidity, action)
}

func zadehOptions() *ops.Options {
	return &ops.Options{
		Logic:  ops.Zadeh{},
		Sets:   ops.MaxUnion{},
		Defuzz: ops.DefuzzFunc(purefn.CenterOfMass),
	}
}

func newContext(t *testing.T, values map[string]float64) *rules.Context {
	t.Helper()
	return &rules.Context{
		Values:    values,
		Universes: newThermostat(t),
		Options:   zadehOptions(),
	}
}

func thermostatRules() []rules.Rule {
	return []rules.Rule{
		rules.NewRule(rules.IsOf("temp", "cold"), "action", "high"),
		rules.NewRule(rules.IsOf("temp", "mild"), "action", "medium"),
		rules.NewRule(
			rules.AndOf(rules.IsOf("temp", "hot"), rules.NotOf(rules.IsOf("humidity", "wet"))),
			"action", "low",
		),
		rules.NewRule(
			rules.OrOf(rules.IsOf("humidity", "wet"), rules.IsOf("temp", "hot")),
			"action", "medium",
		),
	}
}

func assertSamePoints(t *testing.T, want, got *set.Set) {
	t.Helper()
	wp, gp := want.Points(), got.Points()
	require.Len(t, gp, len(wp))
	for i := range wp {
		require.Equal(t, wp[i].Key, gp[i].Key)
		require.InDelta(t, wp[i].Value, gp[i].Value, 1e-9)
	}
}
