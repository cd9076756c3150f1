// File: metrics/collector_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package metrics_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/momentics/hioload-mem/metrics"
)

// captureBackend accumulates every observation for assertions.
type captureBackend struct {
	mu       sync.Mutex
	ops      float64
	opErrors float64
	batches  float64
	failures float64
	flushes  float64
	flushed  float64
	seconds  float64
	alloc    float64
	trunc    float64
}

func (b *captureBackend) ObserveOperations(ops, errs float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops += ops
	b.opErrors += errs
}

func (b *captureBackend) ObserveBatches(batches, failures float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.batches += batches
	b.failures += failures
}

func (b *captureBackend) ObserveFlush(flushes, ops, seconds float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flushes += flushes
	b.flushed += ops
	b.seconds += seconds
}

func (b *captureBackend) ObserveAlloc(bytes float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alloc += bytes
}

func (b *captureBackend) ObserveTruncations(n float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trunc += n
}

func (b *captureBackend) snapshot() captureBackend {
	b.mu.Lock()
	defer b.mu.Unlock()
	return captureBackend{
		ops: b.ops, opErrors: b.opErrors,
		batches: b.batches, failures: b.failures,
		flushes: b.flushes, flushed: b.flushed, seconds: b.seconds,
		alloc: b.alloc, trunc: b.trunc,
	}
}

func TestCollectorReportsWindows(t *testing.T) {
	defer goleak.VerifyNone(t)

	backend := &captureBackend{}
	c := metrics.NewCollector(backend, metrics.WithReportInterval(time.Millisecond))
	c.Start()

	c.RecordOperation(1, nil)
	c.RecordOperation(1, nil)
	c.RecordOperation(2, errors.New("boom"))
	c.RecordBatch(3, time.Millisecond, nil)
	c.RecordFlush(3, 2*time.Millisecond)
	c.RecordAlloc(128)
	c.RecordTruncation()

	require.Eventually(t, func() bool {
		s := backend.snapshot()
		return s.ops == 2 && s.opErrors == 1 && s.flushes == 1
	}, time.Second, time.Millisecond)

	c.Stop()

	s := backend.snapshot()
	require.Equal(t, float64(1), s.batches)
	require.Zero(t, s.failures)
	require.Equal(t, float64(3), s.flushed)
	require.Greater(t, s.seconds, 0.0)
	require.Equal(t, float64(128), s.alloc)
	require.Equal(t, float64(1), s.trunc)
}

func TestCollectorStopDrainsFinalWindow(t *testing.T) {
	defer goleak.VerifyNone(t)

	backend := &captureBackend{}
	// Long interval: the only report happens on Stop.
	c := metrics.NewCollector(backend, metrics.WithReportInterval(time.Hour))
	c.Start()

	c.RecordOperation(1, nil)
	c.RecordBatch(1, time.Microsecond, errors.New("boom"))
	c.Stop()

	s := backend.snapshot()
	require.Equal(t, float64(1), s.ops)
	require.Equal(t, float64(1), s.batches)
	require.Equal(t, float64(1), s.failures)
}

func TestCollectorNilBackendDiscards(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := metrics.NewCollector(nil, metrics.WithReportInterval(time.Millisecond))
	c.Start()
	c.RecordOperation(1, nil)
	c.RecordFlush(10, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	c.Stop()
}

func TestCollectorEmptyWindowsSkipped(t *testing.T) {
	defer goleak.VerifyNone(t)

	backend := &captureBackend{}
	c := metrics.NewCollector(backend, metrics.WithReportInterval(time.Millisecond))
	c.Start()
	time.Sleep(10 * time.Millisecond)
	c.Stop()

	require.Zero(t, backend.snapshot().ops)
}
