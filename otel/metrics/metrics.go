package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	RefreshOutcomeSuccess = "success"
	RefreshOutcomeFailure = "failure"
	RefreshOutcomeError   = "transport_error"
)

var (
	meter metric.Meter

	requestsTotal    metric.Int64Counter
	requestDuration  metric.Float64Histogram
	requestsInFlight metric.Int64UpDownCounter
	replaysTotal     metric.Int64Counter
	refreshTotal     metric.Int64Counter
	refreshDuration  metric.Float64Histogram
)

// Init registers the gateway instruments on the global meter provider.
// Until Init is called every Record function is a no-op.
func Init(serviceName string) error {
	meter = otel.Meter(serviceName)

	var err error

	requestsTotal, err = meter.Int64Counter(
		"gateway_requests_total",
		metric.WithDescription("Total number of attempts sent to the backend"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create gateway_requests_total counter: %w", err)
	}

	requestDuration, err = meter.Float64Histogram(
		"gateway_request_duration_seconds",
		metric.WithDescription("Backend attempt duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create gateway_request_duration_seconds histogram: %w", err)
	}

	requestsInFlight, err = meter.Int64UpDownCounter(
		"gateway_requests_in_flight",
		metric.WithDescription("Number of gateway calls currently in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create gateway_requests_in_flight gauge: %w", err)
	}

	replaysTotal, err = meter.Int64Counter(
		"gateway_replays_total",
		metric.WithDescription("Requests replayed after an unauthorized response"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create gateway_replays_total counter: %w", err)
	}

	refreshTotal, err = meter.Int64Counter(
		"gateway_refresh_total",
		metric.WithDescription("Token refresh calls by outcome"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create gateway_refresh_total counter: %w", err)
	}

	refreshDuration, err = meter.Float64Histogram(
		"gateway_refresh_duration_seconds",
		metric.WithDescription("Token refresh duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create gateway_refresh_duration_seconds histogram: %w", err)
	}

	return nil
}

// RecordRequest records one attempt against the backend. route must be a
// low cardinality name, not a raw path; statusCode 0 marks a transport
// failure.
func RecordRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", statusCode),
	)

	if requestsTotal != nil {
		requestsTotal.Add(ctx, 1, attrs)
	}
	if requestDuration != nil {
		requestDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

func IncrementInFlightRequests(ctx context.Context, method string) {
	if requestsInFlight != nil {
		requestsInFlight.Add(ctx, 1, metric.WithAttributes(attribute.String("http.method", method)))
	}
}

func DecrementInFlightRequests(ctx context.Context, method string) {
	if requestsInFlight != nil {
		requestsInFlight.Add(ctx, -1, metric.WithAttributes(attribute.String("http.method", method)))
	}
}

// RecordReplay counts a request re-issued after a 401. waited tells whether
// the caller rode on another caller's refresh.
func RecordReplay(ctx context.Context, waited bool) {
	if replaysTotal != nil {
		replaysTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("waited", waited)))
	}
}

// RecordRefresh records one refresh call and its outcome.
func RecordRefresh(ctx context.Context, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	if refreshTotal != nil {
		refreshTotal.Add(ctx, 1, attrs)
	}
	if refreshDuration != nil {
		refreshDuration.Record(ctx, duration.Seconds(), attrs)
	}
}
