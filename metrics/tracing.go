// File: metrics/tracing.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pluggable span tracing for batch processing. The engine depends only
// on the Tracer interface; the OpenTelemetry adapter uses the global
// provider so applications keep full control over exporters.

package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanEnder finishes a span. Pass nil for success or the failure cause.
type SpanEnder func(err error)

// Tracer starts spans around batch processing.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, SpanEnder)
}

// NopTracer is the default: no spans, zero overhead.
type NopTracer struct{}

// StartSpan returns the context unchanged and a no-op ender.
func (NopTracer) StartSpan(ctx context.Context, _ string) (context.Context, SpanEnder) {
	return ctx, func(error) {}
}

// OTelTracer adapts OpenTelemetry tracing to the Tracer interface.
type OTelTracer struct {
	tracer trace.Tracer
}

// NewOTelTracer creates a tracer using the global provider.
func NewOTelTracer(serviceName string) *OTelTracer {
	if serviceName == "" {
		serviceName = "hioload-mem"
	}
	return &OTelTracer{tracer: otel.Tracer(serviceName)}
}

// StartSpan starts an OpenTelemetry span.
func (t *OTelTracer) StartSpan(ctx context.Context, name string) (context.Context, SpanEnder) {
	ctx, span := t.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

// Ensure compile-time compliance.
var (
	_ Tracer = NopTracer{}
	_ Tracer = (*OTelTracer)(nil)
)
