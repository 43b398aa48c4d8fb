package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNoopTracer(t *testing.T) {
	t.Parallel()

	tracer := &NoopTracer{}
	ctx, span := tracer.Start(context.Background(), "unifiedauth.verify_token")
	require.NotNil(t, span)
	assert.Equal(t, context.Background(), ctx)

	// No-ops must be safe to call.
	span.SetAttribute("auth.valid", "true")
	span.End()
}

func TestOpenTelemetryTracer(t *testing.T) {
	t.Parallel()

	tracer := NewOpenTelemetryTracer(noop.NewTracerProvider().Tracer("unifiedauth"))
	ctx, span := tracer.Start(context.Background(), "unifiedauth.verify_token")
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	span.SetAttribute("auth.error_code", "EXPIRED_TOKEN")
	span.End()
}
