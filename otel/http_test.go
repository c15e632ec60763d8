package otel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return recorder
}

func TestInjectTraceHeaders(t *testing.T) {
	setupTestTracer(t)

	ctx, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	headers := InjectTraceHeaders(ctx, nil)
	require.NotNil(t, headers)
	assert.Contains(t, headers["traceparent"], span.SpanContext().TraceID().String())

	existing := InjectTraceHeaders(ctx, map[string]string{"x-source": "cli"})
	assert.Equal(t, "cli", existing["x-source"])
	assert.Equal(t, headers["traceparent"], existing["traceparent"])
}

func TestTracedRestyClientPropagates(t *testing.T) {
	setupTestTracer(t)

	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("traceparent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	resp, err := NewTracedRestyClient(server.URL).R().SetContext(ctx).Get("/projects")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, received, span.SpanContext().TraceID().String())
}

func TestStartHTTPSpan(t *testing.T) {
	recorder := setupTestTracer(t)

	spanCtx, finish := StartHTTPSpan(context.Background(), "bm-gateway", "api", "refresh", http.MethodPost, "http://api.local", "/auth/refresh-token")
	assert.True(t, trace.SpanFromContext(spanCtx).SpanContext().IsValid())
	finish(http.StatusUnauthorized, nil)

	_, finish = StartHTTPSpan(context.Background(), "bm-gateway", "api", "projects", http.MethodGet, "http://api.local", "/projects")
	finish(0, assert.AnError)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "HTTP.api.refresh", spans[0].Name())
	assert.Equal(t, "HTTP 401", spans[0].Status().Description)
	assert.Equal(t, assert.AnError.Error(), spans[1].Status().Description)
}
