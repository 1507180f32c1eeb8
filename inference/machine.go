// Package inference runs computation cycles over a rule set: it owns the
// current input values and operator table, aggregates the rule outputs and
// defuzzifies the result into a crisp value.
package inference

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"sync"
	"time"

	"github.com/on-the-ground/fuzzy_ive_go/metrics"
	"github.com/on-the-ground/fuzzy_ive_go/ops"
	"github.com/on-the-ground/fuzzy_ive_go/rules"
	"github.com/on-the-ground/fuzzy_ive_go/set"
	"go.uber.org/zap"
)

// ErrUndefinedResult is returned when defuzzification yields a non-finite
// value, typically because no rule output kept a single point.
var ErrUndefinedResult = errors.New("undefined inference result")

// Machine computes crisp decisions from the current input snapshot.
//
// Compute and Update are serialized; a Machine is safe for concurrent use.
// Callers must not register sets in the machine's universes while a cycle
// is running.
type Machine struct {
	mu        sync.Mutex
	rules     *rules.RuleSet
	universes *set.Registry
	options   ops.Options
	values    map[string]float64

	logger       *zap.Logger
	metrics      *metrics.Metrics
	sink         chan Cycle
	closed       bool
	sampleOutput bool
}

// New validates the operator table and returns a machine with no input values.
func New(rs *rules.RuleSet, universes *set.Registry, options ops.Options, opts ...Option) (*Machine, error) {
	if rs == nil {
		return nil, fmt.Errorf("%w: nil rule set", rules.ErrConfiguration)
	}
	if universes == nil {
		return nil, fmt.Errorf("%w: nil universe registry", rules.ErrConfiguration)
	}
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", rules.ErrConfiguration, err)
	}

	m := &Machine{
		rules:     rs,
		universes: universes,
		options:   options,
		values:    map[string]float64{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.sampleOutput {
		out, err := universes.Universe(rs.Universe())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", rules.ErrConfiguration, err)
		}
		if err := out.Sample(); err != nil {
			return nil, fmt.Errorf("sampling %q: %w", out.Name(), err)
		}
	}
	return m, nil
}

// Update replaces the whole input snapshot. Variables missing from values
// are no longer resolvable.
func (m *Machine) Update(values map[string]float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = maps.Clone(values)
	if m.values == nil {
		m.values = map[string]float64{}
	}
}

// Values returns a copy of the current input snapshot.
func (m *Machine) Values() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.values)
}

// Context returns the view a cycle would run against right now.
func (m *Machine) Context() *rules.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.context()
}

func (m *Machine) context() *rules.Context {
	options := m.options
	return &rules.Context{
		Values:    maps.Clone(m.values),
		Universes: m.universes,
		Options:   &options,
	}
}

// RuleSet returns the rule set the machine evaluates.
func (m *Machine) RuleSet() *rules.RuleSet { return m.rules }

// Compute runs one cycle: it aggregates every rule output and defuzzifies
// the result. The label is the aggregated set's name.
//
// Repeated calls with the same inputs and operators return the same value,
// even though set caches may grow between them.
func (m *Machine) Compute() (string, float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cycle := newCycle(m.rules.Mode(), time.Now())
	label, value, points, err := m.compute()
	cycle.finish(time.Now())
	cycle.Label, cycle.Value, cycle.Points, cycle.Err = label, value, points, err

	m.record(cycle)
	return label, value, err
}

func (m *Machine) compute() (string, float64, int, error) {
	aggregate, err := m.rules.Compute(m.context())
	if err != nil {
		return "", math.NaN(), 0, err
	}
	label := aggregate.Name()
	value := m.options.Defuzz.Defuzzify(aggregate)
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return label, value, aggregate.Len(),
			fmt.Errorf("%w: %q defuzzified to %v", ErrUndefinedResult, label, value)
	}
	return label, value, aggregate.Len(), nil
}

func (m *Machine) record(c Cycle) {
	m.metrics.ObserveCycle(string(c.Mode), m.rules.Len(), c.Points, c.Duration(), c.Err)

	if c.Err != nil {
		m.logger.Warn("inference cycle failed",
			zap.Stringer("cycle_id", c.ID),
			zap.String("mode", string(c.Mode)),
			zap.Duration("duration", c.Duration()),
			zap.Error(c.Err),
		)
	} else {
		m.logger.Debug("inference cycle completed",
			zap.Stringer("cycle_id", c.ID),
			zap.String("mode", string(c.Mode)),
			zap.String("label", c.Label),
			zap.Float64("value", c.Value),
			zap.Int("entries", c.Points),
			zap.Duration("duration", c.Duration()),
		)
	}

	if m.sink == nil || m.closed {
		return
	}
	select {
	case m.sink <- c:
	default:
		m.logger.Debug("cycle sink full, dropping record", zap.Stringer("cycle_id", c.ID))
	}
}

// Source returns the cycle records channel, or nil without WithCycleSink.
// It is closed by Close.
func (m *Machine) Source() <-chan Cycle { return m.sink }

// Close closes the cycle sink. The machine keeps computing afterwards but
// publishes no more records.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	if m.sink != nil {
		close(m.sink)
	}
	if err := m.logger.Sync(); err != nil {
		m.logger.Debug("failed to sync logger", zap.Error(err))
	}
}
