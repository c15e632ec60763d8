package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TraceFields returns trace_id and span_id fields for the span carried by
// ctx, or nothing when ctx has no valid span.
func TraceFields(ctx context.Context) []zap.Field {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", spanContext.TraceID().String()),
		zap.String("span_id", spanContext.SpanID().String()),
	}
}

// WithTrace returns l annotated with the trace of ctx.
func WithTrace(ctx context.Context, l *zap.Logger) *zap.Logger {
	if fields := TraceFields(ctx); len(fields) > 0 {
		return l.With(fields...)
	}
	return l
}

// GetTraceID extracts the trace ID from context
func GetTraceID(ctx context.Context) string {
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.IsValid() {
		return spanContext.TraceID().String()
	}
	return ""
}
