package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/on-the-ground/fuzzy_ive_go/internal/pool"
	"github.com/on-the-ground/fuzzy_ive_go/set"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Mode selects how a RuleSet aggregates its rules.
type Mode string

const (
	// Sequential folds rule outputs left to right in rule order.
	Sequential Mode = "sequential"
	// Parallel computes rules on a worker pool and folds in completion order.
	Parallel Mode = "parallel"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case Sequential, "":
		return Sequential, nil
	case Parallel:
		return Parallel, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrConfiguration, s)
	}
}

type Option func(*RuleSet)

// WithMode sets the aggregation mode used by Compute. The default is Sequential.
func WithMode(mode Mode) Option {
	return func(rs *RuleSet) { rs.mode = mode }
}

// WithWorkers sizes the parallel worker pool. Values <= 0 mean one worker per CPU.
func WithWorkers(n int) Option {
	return func(rs *RuleSet) { rs.workers = n }
}

func WithLogger(logger *zap.Logger) Option {
	return func(rs *RuleSet) { rs.logger = logger }
}

// RuleSet is a non-empty, ordered list of rules concluding on one universe.
type RuleSet struct {
	rules   []Rule
	mode    Mode
	workers int
	logger  *zap.Logger
}

// NewRuleSet validates rules: the list must be non-empty, every condition
// must be a complete tree and every rule must target the first rule's universe.
func NewRuleSet(rules []Rule, opts ...Option) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: rule set is empty", ErrConfiguration)
	}
	universe := rules[0].Universe()
	for i, rule := range rules {
		if rule.Universe() != universe {
			return nil, fmt.Errorf(
				"%w: rules are in different result universes (%s and %s)",
				ErrConfiguration, universe, rule.Universe(),
			)
		}
		if err := validate(rule.Condition()); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}

	rs := &RuleSet{
		rules:  append([]Rule(nil), rules...),
		mode:   Sequential,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(rs)
	}
	if rs.mode != Sequential && rs.mode != Parallel {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrConfiguration, rs.mode)
	}
	return rs, nil
}

// Universe is the output universe shared by every rule.
func (rs *RuleSet) Universe() string { return rs.rules[0].Universe() }

func (rs *RuleSet) Mode() Mode { return rs.mode }

func (rs *RuleSet) Len() int { return len(rs.rules) }

// Rules returns a copy of the rules in order.
func (rs *RuleSet) Rules() []Rule { return append([]Rule(nil), rs.rules...) }

// Compute aggregates every rule output using the configured mode.
func (rs *RuleSet) Compute(ctx *Context) (*set.Set, error) {
	if rs.mode == Parallel {
		return rs.ComputeParallel(ctx)
	}
	return rs.ComputeSequential(ctx)
}

// ComputeSequential computes rule 0, then folds every following rule into
// the accumulator with the union operator, in rule order.
func (rs *RuleSet) ComputeSequential(ctx *Context) (*set.Set, error) {
	var acc *set.Set
	for i, rule := range rs.rules {
		out, err := rs.computeRule(ctx, i, rule)
		if err != nil {
			return nil, err
		}
		if acc == nil {
			acc = out
			continue
		}
		acc = ctx.Options.Sets.Union(acc, out)
	}
	return acc, nil
}

// ComputeParallel computes every rule on a worker pool and folds the
// outputs with the union operator as they complete. The fold order is not
// deterministic, so the union must be commutative and associative.
//
// Every dispatched rule runs to completion. If any rule fails, all failures
// are returned together.
func (rs *RuleSet) ComputeParallel(ctx *Context) (*set.Set, error) {
	done := make(chan ruleResult, len(rs.rules))
	p := pool.New(
		pool.NewConfig(len(rs.rules), rs.workers),
		func(j ruleJob) {
			out, err := rs.computeRule(ctx, j.index, j.rule)
			done <- ruleResult{index: j.index, out: out, err: err}
		},
		func(j ruleJob, r any) {
			done <- ruleResult{
				index: j.index,
				err:   fmt.Errorf("%w: rule %d %s: %v", ErrWorkerPanic, j.index, j.rule, r),
			}
		},
	)
	defer p.Close()
	for i, rule := range rs.rules {
		p.Submit(ruleJob{index: i, rule: rule})
	}

	var (
		acc  *set.Set
		errs error
	)
	// each job reports exactly once, from its handler or from recovery
	for range rs.rules {
		res := <-done
		if res.err != nil {
			errs = multierr.Append(errs, res.err)
			continue
		}
		if errs != nil {
			continue
		}
		rs.logger.Debug("folding rule output", zap.Int("index", res.index))
		if acc == nil {
			acc = res.out
			continue
		}
		acc = ctx.Options.Sets.Union(acc, res.out)
	}
	if errs != nil {
		return nil, errs
	}
	return acc, nil
}

func (rs *RuleSet) computeRule(ctx *Context, index int, rule Rule) (*set.Set, error) {
	strength, out, err := rule.fire(ctx)
	if err != nil {
		rs.logger.Debug("rule failed",
			zap.Int("index", index),
			zap.Stringer("rule", rule),
			zap.Error(err),
		)
		return nil, err
	}
	rs.logger.Debug("rule fired",
		zap.Int("index", index),
		zap.Stringer("rule", rule),
		zap.Float64("strength", strength),
		zap.Int("entries", out.Len()),
	)
	return out, nil
}

func (rs *RuleSet) String() string {
	var b strings.Builder
	b.WriteString("(RuleSet\n")
	for _, rule := range rs.rules {
		fmt.Fprintf(&b, "\t%s\n", rule)
	}
	b.WriteString(")")
	return b.String()
}

type ruleJob struct {
	index int
	rule  Rule
}

func (j ruleJob) PartitionKey() string { return strconv.Itoa(j.index) }

type ruleResult struct {
	index int
	out   *set.Set
	err   error
}
