// Package metrics exposes Prometheus collectors for inference cycles.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every collector when no namespace is configured.
const DefaultNamespace = "fuzzy"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics groups the collectors updated once per compute cycle.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Cycles counts finished cycles. Labels: mode, status
	Cycles *prometheus.CounterVec
	// CycleDuration observes wall time per cycle. Labels: mode
	CycleDuration *prometheus.HistogramVec
	// RulesEvaluated counts rules dispatched across all cycles.
	RulesEvaluated prometheus.Counter
	// AggregateSize is the number of points in the last aggregated output set.
	AggregateSize prometheus.Gauge
}

// New registers the collectors on reg. A nil reg registers on the
// default Prometheus registry.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Metrics{
		Cycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inference",
			Name:      "cycles_total",
			Help:      "Total compute cycles by rule set mode and status",
		}, []string{"mode", "status"}),
		CycleDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "inference",
			Name:      "cycle_duration_seconds",
			Help:      "Compute cycle duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}, []string{"mode"}),
		RulesEvaluated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inference",
			Name:      "rules_evaluated_total",
			Help:      "Total rules dispatched by compute cycles",
		}),
		AggregateSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "inference",
			Name:      "aggregate_points",
			Help:      "Points held by the last aggregated output set",
		}),
	}
}

// ObserveCycle records one finished cycle. points is ignored for failed cycles.
func (m *Metrics) ObserveCycle(mode string, rules, points int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.Cycles.WithLabelValues(mode, status).Inc()
	m.CycleDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	m.RulesEvaluated.Add(float64(rules))
	if err == nil {
		m.AggregateSize.Set(float64(points))
	}
}
