// Package metrics
// Author: momentics <momentics@gmail.com>
//
// Metrics sinks for the batch engine and allocators.
//
// Collector implements api.Recorder with lock-free atomic counters and
// reports aggregated snapshots to a Backend on a ticker, staging them
// through a bounded FIFO so a slow backend never blocks the hot path.
// Prometheus is the production Backend; tracing.go adds an optional
// OpenTelemetry span wrapper around batch processing.
package metrics
