// Package metrics exposes Prometheus collectors for analyses.
//
// A Metrics value owns its registry, so several engines in one process
// (or in parallel tests) do not collide on the default registerer. All
// methods accept a nil receiver and do nothing, so callers need not
// check whether metrics are enabled.
//
// All methods are safe for concurrent use.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "observatory"

// CharacterBuckets are the histogram buckets for analyzed text length.
var CharacterBuckets = []float64{100, 500, 1000, 2000, 5000, 10000}

// Metrics holds the analysis collectors.
type Metrics struct {
	reg *prometheus.Registry

	Analyses    prometheus.Counter
	Failures    prometheus.Counter
	Characters  prometheus.Histogram
	Patterns    *prometheus.CounterVec
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	Latency     prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		Analyses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed analyses.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_failures_total",
			Help:      "Analyses that returned an error.",
		}),
		Characters: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "characters_analyzed",
			Help:      "Length of analyzed text in characters.",
			Buckets:   CharacterBuckets,
		}),
		Patterns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patterns_detected_total",
			Help:      "Returned patterns by type.",
		}, []string{"type"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Analyses served from the result cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Analyses not found in the result cache.",
		}),
		Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one analysis.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.reg.MustRegister(m.Analyses, m.Failures, m.Characters, m.Patterns,
		m.CacheHits, m.CacheMisses, m.Latency)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// ObserveAnalysis records one completed analysis. types lists the type
// name of every returned pattern.
func (m *Metrics) ObserveAnalysis(chars int, elapsed time.Duration, types []string) {
	if m == nil {
		return
	}
	m.Analyses.Inc()
	m.Characters.Observe(float64(chars))
	m.Latency.Observe(elapsed.Seconds())
	for _, t := range types {
		m.Patterns.WithLabelValues(t).Inc()
	}
}

// ObserveFailure records one failed analysis.
func (m *Metrics) ObserveFailure() {
	if m == nil {
		return
	}
	m.Failures.Inc()
}

// CacheHit records a cache hit.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// CacheMiss records a cache miss.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}

// WriteToTextfile writes the current values in the text exposition format,
// for the node exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
