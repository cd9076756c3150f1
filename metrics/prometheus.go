// File: metrics/prometheus.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Prometheus backend for the Collector. Every instance owns its own
// registry so independent cores never collide on metric names.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Ensure compile-time compliance.
var _ Backend = (*Prometheus)(nil)

// Prometheus exports collector windows as Prometheus metrics.
type Prometheus struct {
	registry *prometheus.Registry

	opsTotal      prometheus.Counter
	opErrorsTotal prometheus.Counter
	batchesTotal  *prometheus.CounterVec
	flushesTotal  prometheus.Counter
	flushedOps    prometheus.Counter
	flushSeconds  prometheus.Histogram
	allocBytes    prometheus.Counter
	truncations   prometheus.Counter
}

// NewPrometheus builds a backend with a fresh registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{registry: prometheus.NewRegistry()}
	return p.register()
}

func (p *Prometheus) register() *Prometheus {
	const namespace = "hioload_mem"

	p.opsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Number of messages dispatched successfully.",
	})
	p.registry.MustRegister(p.opsTotal)

	p.opErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_errors_total",
		Help:      "Number of message dispatches that failed.",
	})
	p.registry.MustRegister(p.opErrorsTotal)

	p.batchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batches_total",
		Help:      "Number of processed batches by result.",
	}, []string{"result"})
	p.registry.MustRegister(p.batchesTotal)

	p.flushesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flushes_total",
		Help:      "Number of batcher flushes.",
	})
	p.registry.MustRegister(p.flushesTotal)

	p.flushedOps = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flushed_operations_total",
		Help:      "Number of operations submitted through flushes.",
	})
	p.registry.MustRegister(p.flushedOps)

	p.flushSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "flush_duration_seconds",
		Help:      "Aggregated flush time per reporting window.",
	})
	p.registry.MustRegister(p.flushSeconds)

	p.allocBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "arena_alloc_bytes_total",
		Help:      "Bytes served by arena allocators.",
	})
	p.registry.MustRegister(p.allocBytes)

	p.truncations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payload_truncations_total",
		Help:      "Number of lossy payload copies.",
	})
	p.registry.MustRegister(p.truncations)

	return p
}

// Handler returns an HTTP handler for docking with various frameworks.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(
		p.registry,
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	)
}

// ObserveOperations implements Backend.
func (p *Prometheus) ObserveOperations(ops, errs float64) {
	p.opsTotal.Add(ops)
	p.opErrorsTotal.Add(errs)
}

// ObserveBatches implements Backend.
func (p *Prometheus) ObserveBatches(batches, failures float64) {
	p.batchesTotal.With(prometheus.Labels{"result": "success"}).Add(batches - failures)
	p.batchesTotal.With(prometheus.Labels{"result": "failure"}).Add(failures)
}

// ObserveFlush implements Backend.
func (p *Prometheus) ObserveFlush(flushes, ops, seconds float64) {
	p.flushesTotal.Add(flushes)
	p.flushedOps.Add(ops)
	if flushes > 0 {
		p.flushSeconds.Observe(seconds)
	}
}

// ObserveAlloc implements Backend.
func (p *Prometheus) ObserveAlloc(bytes float64) {
	p.allocBytes.Add(bytes)
}

// ObserveTruncations implements Backend.
func (p *Prometheus) ObserveTruncations(n float64) {
	p.truncations.Add(n)
}
