package core

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Tracer is a generic tracing interface for the engine and adapters.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, Span)
}

// Span is one traced operation.
type Span interface {
	SetAttribute(key, value string)
	End()
}

// NoopTracer is the default tracer that does nothing.
type NoopTracer struct{}

func (t *NoopTracer) Start(ctx context.Context, operation string) (context.Context, Span) {
	return ctx, &noopSpan{}
}

type noopSpan struct{}

func (s *noopSpan) SetAttribute(key, value string) {}
func (s *noopSpan) End()                           {}

// OpenTelemetryTracer implements Tracer on an OpenTelemetry tracer.
type OpenTelemetryTracer struct {
	tracer oteltrace.Tracer
}

// NewOpenTelemetryTracer wraps an otel tracer.
func NewOpenTelemetryTracer(tracer oteltrace.Tracer) Tracer {
	return &OpenTelemetryTracer{tracer: tracer}
}

func (t *OpenTelemetryTracer) Start(ctx context.Context, operation string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, operation)
	return ctx, &otelSpan{span: span}
}

type otelSpan struct {
	span oteltrace.Span
}

func (s *otelSpan) SetAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

func (s *otelSpan) End() {
	s.span.End()
}
