package observe

import (
	"context"

	"github.com/ib-77/cor3/pkg/cor"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SpanEvents adds one event per chain step to the span active in ctx.
type SpanEvents struct{}

func (SpanEvents) Observe(ctx context.Context, e cor.Event) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("cor.handler", e.Handler),
		attribute.Int("cor.hop", e.Hop),
	}
	if e.Next != "" {
		attrs = append(attrs, attribute.String("cor.next", e.Next))
	}
	if e.Err != nil {
		attrs = append(attrs, attribute.String("cor.error", e.Err.Error()))
	}

	span.AddEvent("cor."+e.Kind.String(), trace.WithAttributes(attrs...))
}
