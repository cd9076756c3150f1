// File: batch/engine.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// In-order batch processor with fail-fast, no-compensation semantics:
// the first handler failure aborts the batch and the result reports how
// many messages completed before it. Completed messages keep their side
// effects; nothing is rolled back.

package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/metrics"
)

// Handler processes one message. A nil return commits the message;
// an error aborts the batch at this index.
type Handler func(ctx context.Context, msg Message) error

// Engine dispatches batch messages to registered handlers by kind.
// Not internally thread-safe: registration must finish before
// processing starts, and concurrent ProcessBatch callers must
// serialize externally.
type Engine struct {
	handlers map[Kind]Handler
	rec      api.Recorder
	tracer   metrics.Tracer
}

// EngineOption customizes Engine construction.
type EngineOption func(*Engine)

// WithRecorder attaches a metrics sink.
func WithRecorder(rec api.Recorder) EngineOption {
	return func(e *Engine) {
		if rec != nil {
			e.rec = rec
		}
	}
}

// WithTracer attaches a span tracer around ProcessBatch.
func WithTracer(t metrics.Tracer) EngineOption {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithHandler registers a handler during construction.
func WithHandler(kind Kind, h Handler) EngineOption {
	return func(e *Engine) {
		e.handlers[kind] = h
	}
}

// NewEngine builds an engine with no handlers registered.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		handlers: make(map[Kind]Handler),
		rec:      api.NopRecorder{},
		tracer:   metrics.NopTracer{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register binds a handler to a kind, replacing any previous binding.
func (e *Engine) Register(kind Kind, h Handler) {
	if h == nil {
		panic("batch: nil handler")
	}
	e.handlers[kind] = h
}

// ProcessBatch dispatches b's messages in insertion order.
//
// An empty or nil batch is a no-op success with Processed 0. On the
// first failure the result carries the index of the failing message:
// exactly that many messages completed before it. A message kind with
// no registered handler is itself a failure, not a no-op.
func (e *Engine) ProcessBatch(ctx context.Context, b *Batch) api.Result {
	ctx, end := e.tracer.StartSpan(ctx, "batch.process")

	if b == nil || b.Len() == 0 {
		end(nil)
		return api.Result{Success: true}
	}

	start := time.Now()
	for i := 0; i < b.Len(); i++ {
		msg := b.Get(i)
		h, ok := e.handlers[msg.Kind]
		if !ok {
			err := fmt.Errorf("%w: 0x%02x", api.ErrUnknownKind, uint8(msg.Kind))
			e.rec.RecordOperation(uint8(msg.Kind), err)
			e.rec.RecordBatch(i, time.Since(start), err)
			end(err)
			return api.Result{Processed: uint32(i), Err: err}
		}
		if err := h(ctx, msg); err != nil {
			e.rec.RecordOperation(uint8(msg.Kind), err)
			e.rec.RecordBatch(i, time.Since(start), err)
			end(err)
			return api.Result{Processed: uint32(i), Err: err}
		}
		e.rec.RecordOperation(uint8(msg.Kind), nil)
	}

	e.rec.RecordBatch(b.Len(), time.Since(start), nil)
	end(nil)
	return api.Result{Success: true, Processed: uint32(b.Len())}
}
