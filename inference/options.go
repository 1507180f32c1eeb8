package inference

import (
	"github.com/on-the-ground/fuzzy_ive_go/metrics"
	"go.uber.org/zap"
)

type Option func(*Machine)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Machine) { m.logger = logger }
}

// WithMetrics records every cycle on the given collectors.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Machine) { m.metrics = mt }
}

// WithCycleSink publishes a Cycle per Compute call on Source, buffering up
// to size records. Records are dropped while the buffer is full.
func WithCycleSink(size int) Option {
	return func(m *Machine) {
		if size <= 0 {
			size = 1
		}
		m.sink = make(chan Cycle, size)
	}
}

// WithDomainSampling samples every set of the output universe over its
// domain when the machine is built, so rule outputs have cached points to
// filter.
func WithDomainSampling() Option {
	return func(m *Machine) { m.sampleOutput = true }
}
