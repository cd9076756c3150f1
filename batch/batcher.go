// File: batch/batcher.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Client-side accumulator. Operations land in an in-progress batch and
// are flushed synchronously through an injected Engine once the
// auto-flush threshold is reached. The batcher owns its batch but only
// borrows the engine.

package batch

import (
	"context"
	"sync"
	"time"

	"github.com/momentics/hioload-mem/api"
)

// BatcherConfig sizes the in-progress batch and its flush policy.
type BatcherConfig struct {
	// MaxBatchSize caps the in-progress batch. 0 means DefaultCapacity.
	MaxBatchSize int
	// AutoFlushThreshold triggers a synchronous flush from AddOperation
	// once the batch reaches this count. 0 disables auto-flush.
	AutoFlushThreshold int
	// MaxBatchWait drives the optional background flush timer started
	// by Run. It has no effect on the synchronous path: without Run,
	// the field is configuration only and nothing enforces it.
	MaxBatchWait time.Duration
}

// DefaultBatcherConfig returns the stock flush policy.
func DefaultBatcherConfig() BatcherConfig {
	return BatcherConfig{
		MaxBatchSize:       DefaultCapacity,
		AutoFlushThreshold: 256,
		MaxBatchWait:       100 * time.Millisecond,
	}
}

// BatcherStats are cumulative over the batcher's lifetime.
type BatcherStats struct {
	OperationsQueued  uint64
	OperationsFlushed uint64
	FlushesPerformed  uint64
	TotalFlushTime    time.Duration
}

// Batcher accumulates operations and flushes them through an Engine.
// The lock exists so Run's timer can interleave with callers; on the
// purely synchronous path it is uncontended.
type Batcher struct {
	mu        sync.Mutex
	engine    *Engine
	batch     *Batch
	threshold int
	wait      time.Duration
	stats     BatcherStats
	rec       api.Recorder
}

// NewBatcher builds a batcher around an injected engine. Injecting the
// engine avoids per-flush construction cost.
func NewBatcher(engine *Engine, cfg BatcherConfig, opts ...BatcherOption) (*Batcher, error) {
	if engine == nil {
		return nil, api.ErrInvalidArgument
	}
	size := cfg.MaxBatchSize
	if size <= 0 {
		size = DefaultCapacity
	}
	threshold := cfg.AutoFlushThreshold
	if threshold > size {
		threshold = size
	}
	b, err := NewBatchSize(size, size*MaxPayload)
	if err != nil {
		return nil, err
	}
	bt := &Batcher{
		engine:    engine,
		batch:     b,
		threshold: threshold,
		wait:      cfg.MaxBatchWait,
		rec:       api.NopRecorder{},
	}
	for _, opt := range opts {
		opt(bt)
	}
	return bt, nil
}

// BatcherOption customizes Batcher construction.
type BatcherOption func(*Batcher)

// WithBatcherRecorder attaches a metrics sink observing flushes.
func WithBatcherRecorder(rec api.Recorder) BatcherOption {
	return func(b *Batcher) {
		if rec != nil {
			b.rec = rec
		}
	}
}

// AddOperation appends one operation to the in-progress batch. When the
// batch reaches the auto-flush threshold the flush happens synchronously
// before AddOperation returns; a failed flush surfaces as the returned
// error while the operation itself stays accepted.
func (b *Batcher) AddOperation(ctx context.Context, kind Kind, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.batch.Add(kind, payload); err != nil {
		return err
	}
	b.stats.OperationsQueued++

	if b.threshold > 0 && b.batch.Len() >= b.threshold {
		res := b.flushLocked(ctx)
		return res.Err
	}
	return nil
}

// Flush submits the in-progress batch. An empty batch is a no-op
// success. The batch is cleared for reuse afterwards regardless of the
// result: a failed batch keeps its prefix side effects and is not
// retried here.
func (b *Batcher) Flush(ctx context.Context) api.Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushLocked(ctx)
}

func (b *Batcher) flushLocked(ctx context.Context) api.Result {
	if b.batch.Len() == 0 {
		return api.Result{Success: true}
	}

	start := time.Now()
	res := b.engine.ProcessBatch(ctx, b.batch)
	elapsed := time.Since(start)

	b.stats.OperationsFlushed += uint64(res.Processed)
	b.stats.FlushesPerformed++
	b.stats.TotalFlushTime += elapsed
	b.rec.RecordFlush(int(res.Processed), elapsed)
	for n := b.batch.Truncations(); n > 0; n-- {
		b.rec.RecordTruncation()
	}

	b.batch.Clear()
	return res
}

// Run drives periodic flushes every MaxBatchWait until ctx is done.
// This timer is an opt-in enhancement over the synchronous core: the
// batcher never starts it on its own. A final flush runs on exit.
func (b *Batcher) Run(ctx context.Context) {
	wait := b.wait
	if wait <= 0 {
		wait = DefaultBatcherConfig().MaxBatchWait
	}
	t := time.NewTicker(wait)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			b.Flush(context.Background())
			return
		case <-t.C:
			b.Flush(ctx)
		}
	}
}

// SetAutoFlushThreshold updates the threshold at runtime; used by the
// control-plane hot-reload hook. Values above the batch capacity clamp.
func (b *Batcher) SetAutoFlushThreshold(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n > b.batch.Cap() {
		n = b.batch.Cap()
	}
	b.threshold = n
}

// Pending returns the current in-progress batch length.
func (b *Batcher) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.batch.Len()
}

// Stats returns a copy of the cumulative counters.
func (b *Batcher) Stats() BatcherStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}
