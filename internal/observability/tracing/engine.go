package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const engineTracerName = "github.com/subtrackhq/subtrack/internal/service"

func EngineTracer() trace.Tracer {
	return otel.Tracer(engineTracerName)
}

func StartSweepSpan(ctx context.Context, runID string) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "sweep.run",
		trace.WithAttributes(
			attribute.String("run_id", runID),
		),
	)
}

func StartDispatchSpan(ctx context.Context, eventID, eventType string) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "dispatch.attempt",
		trace.WithAttributes(
			attribute.String("event_id", eventID),
			attribute.String("event_type", eventType),
		),
	)
}

func StartChannelSendSpan(ctx context.Context, chatID string) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "channel.send",
		trace.WithAttributes(
			attribute.String("chat_id", chatID),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// InjectToHTTPRequest propagates the current trace context onto an
// outbound request.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}
