// File: metrics/collector.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Buffered metrics collector. Record* calls only touch atomic counters;
// an asynchronous worker snapshots and resets them on a ticker, queues
// the snapshot, and drains the queue into the Backend. The queue is
// owned by the worker goroutine alone, matching the non-thread-safe
// contract of eapache/queue.

package metrics

import (
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-mem/api"
)

const (
	defaultReportInterval = 5 * time.Second
	maxPendingSnapshots   = 64
)

// Backend receives aggregated counter deltas from the Collector.
type Backend interface {
	ObserveOperations(ops, errors float64)
	ObserveBatches(batches, failures float64)
	ObserveFlush(flushes, ops, seconds float64)
	ObserveAlloc(bytes float64)
	ObserveTruncations(n float64)
}

// snapshot is one aggregation window of counter deltas.
type snapshot struct {
	ops, opErrors          int64
	batches, batchFailures int64
	flushes, flushedOps    int64
	flushSeconds           float64
	allocBytes             int64
	truncations            int64
}

func (s snapshot) empty() bool {
	return s.ops == 0 && s.opErrors == 0 && s.batches == 0 &&
		s.batchFailures == 0 && s.flushes == 0 && s.allocBytes == 0 &&
		s.truncations == 0
}

// Collector buffers observations and reports them in batches.
type Collector struct {
	ops           atomic.Int64
	opErrors      atomic.Int64
	batches       atomic.Int64
	batchFailures atomic.Int64
	flushes       atomic.Int64
	flushedOps    atomic.Int64
	flushNanos    atomic.Int64
	allocBytes    atomic.Int64
	truncations   atomic.Int64

	backend  Backend
	interval time.Duration
	pending  *queue.Queue
	sem      chan struct{}
	done     chan struct{}
}

// Ensure compile-time compliance.
var _ api.Recorder = (*Collector)(nil)

// CollectorOption customizes Collector construction.
type CollectorOption func(*Collector)

// WithReportInterval overrides the default 5s aggregation window.
func WithReportInterval(d time.Duration) CollectorOption {
	return func(c *Collector) {
		if d > 0 {
			c.interval = d
		}
	}
}

// NewCollector wraps a backend. A nil backend discards reports.
func NewCollector(backend Backend, opts ...CollectorOption) *Collector {
	c := &Collector{
		backend:  backend,
		interval: defaultReportInterval,
		pending:  queue.New(),
		sem:      make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RecordOperation observes one dispatched message.
func (c *Collector) RecordOperation(_ uint8, err error) {
	if err != nil {
		c.opErrors.Add(1)
		return
	}
	c.ops.Add(1)
}

// RecordBatch observes one completed ProcessBatch call.
func (c *Collector) RecordBatch(_ int, _ time.Duration, err error) {
	c.batches.Add(1)
	if err != nil {
		c.batchFailures.Add(1)
	}
}

// RecordFlush observes one batcher flush.
func (c *Collector) RecordFlush(ops int, elapsed time.Duration) {
	c.flushes.Add(1)
	c.flushedOps.Add(int64(ops))
	c.flushNanos.Add(elapsed.Nanoseconds())
}

// RecordAlloc observes bytes served by an allocator.
func (c *Collector) RecordAlloc(bytes int) {
	c.allocBytes.Add(int64(bytes))
}

// RecordTruncation observes one lossy payload copy.
func (c *Collector) RecordTruncation() {
	c.truncations.Add(1)
}

// Start launches the asynchronous report worker.
func (c *Collector) Start() {
	go c.asyncWorker()
}

// Stop terminates the worker after a final drain. Safe to call once.
func (c *Collector) Stop() {
	close(c.sem)
	<-c.done
}

func (c *Collector) asyncWorker() {
	defer close(c.done)

	t := time.NewTicker(c.interval)
	defer t.Stop()

	for {
		select {
		case <-c.sem:
			c.stage()
			c.drain()
			return
		case <-t.C:
			c.stage()
			c.drain()
		}
	}
}

// stage swaps the live counters for zero and queues the window,
// dropping the oldest window when the queue backs up.
func (c *Collector) stage() {
	s := snapshot{
		ops:           c.ops.Swap(0),
		opErrors:      c.opErrors.Swap(0),
		batches:       c.batches.Swap(0),
		batchFailures: c.batchFailures.Swap(0),
		flushes:       c.flushes.Swap(0),
		flushedOps:    c.flushedOps.Swap(0),
		flushSeconds:  time.Duration(c.flushNanos.Swap(0)).Seconds(),
		allocBytes:    c.allocBytes.Swap(0),
		truncations:   c.truncations.Swap(0),
	}
	if s.empty() {
		return
	}
	if c.pending.Length() >= maxPendingSnapshots {
		c.pending.Remove()
	}
	c.pending.Add(s)
}

// drain pushes every queued window into the backend.
func (c *Collector) drain() {
	if c.backend == nil {
		for c.pending.Length() > 0 {
			c.pending.Remove()
		}
		return
	}
	for c.pending.Length() > 0 {
		s, _ := c.pending.Remove().(snapshot)
		c.backend.ObserveOperations(float64(s.ops), float64(s.opErrors))
		c.backend.ObserveBatches(float64(s.batches), float64(s.batchFailures))
		c.backend.ObserveFlush(float64(s.flushes), float64(s.flushedOps), s.flushSeconds)
		c.backend.ObserveAlloc(float64(s.allocBytes))
		c.backend.ObserveTruncations(float64(s.truncations))
	}
}
