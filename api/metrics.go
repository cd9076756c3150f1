// File: api/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Narrow metrics sink consumed by the batch engine and allocators.
// The core depends on nothing from an implementation beyond these calls.

package api

import "time"

// Recorder receives operational counters from the core. Implementations
// must be safe for concurrent use; the core calls Recorder from whatever
// goroutine happens to own the emitting component.
type Recorder interface {
	// RecordOperation observes one dispatched message.
	RecordOperation(kind uint8, err error)

	// RecordBatch observes one completed ProcessBatch call.
	RecordBatch(processed int, elapsed time.Duration, err error)

	// RecordFlush observes one batcher flush of ops operations.
	RecordFlush(ops int, elapsed time.Duration)

	// RecordAlloc observes bytes served by an allocator.
	RecordAlloc(bytes int)

	// RecordTruncation observes one lossy payload copy.
	RecordTruncation()
}

// NopRecorder discards every observation. It is the default sink.
type NopRecorder struct{}

func (NopRecorder) RecordOperation(uint8, error)          {}
func (NopRecorder) RecordBatch(int, time.Duration, error) {}
func (NopRecorder) RecordFlush(int, time.Duration)        {}
func (NopRecorder) RecordAlloc(int)                       {}
func (NopRecorder) RecordTruncation()                     {}

// Ensure compile-time compliance.
var _ Recorder = NopRecorder{}
