// File: fake/fake.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Hand-written fakes for tests. Kept out of _test files so every
// package's tests share one set of doubles.

package fake

import (
	"context"
	"sync"
	"time"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/batch"
)

// Recorder counts every api.Recorder call. Safe for concurrent use.
type Recorder struct {
	mu          sync.Mutex
	Operations  int
	OpErrors    int
	Batches     int
	Flushes     int
	FlushedOps  int
	AllocBytes  int
	Truncations int
}

// Ensure compile-time compliance.
var _ api.Recorder = (*Recorder)(nil)

func (r *Recorder) RecordOperation(_ uint8, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.OpErrors++
		return
	}
	r.Operations++
}

func (r *Recorder) RecordBatch(_ int, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Batches++
}

func (r *Recorder) RecordFlush(ops int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Flushes++
	r.FlushedOps += ops
}

func (r *Recorder) RecordAlloc(bytes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.AllocBytes += bytes
}

func (r *Recorder) RecordTruncation() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Truncations++
}

// OKHandler returns a handler that records processed messages and
// always succeeds.
func OKHandler(processed *[]batch.Message) batch.Handler {
	return func(_ context.Context, msg batch.Message) error {
		*processed = append(*processed, msg)
		return nil
	}
}

// FailHandler returns a handler that always fails with err.
func FailHandler(err error) batch.Handler {
	return func(context.Context, batch.Message) error {
		return err
	}
}
