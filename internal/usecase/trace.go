package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("cricket-scoring/internal/usecase")

// startSpan only opens a child span; service calls made outside a traced
// request (tests, the rebuild pool) stay unsampled.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func matchAttrs(matchID string, innings int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("cricket.match_id", matchID)}
	if innings > 0 {
		attrs = append(attrs, attribute.Int("cricket.innings", innings))
	}
	return attrs
}
