package otel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/hyperdxio/opentelemetry-logs-go/exporters/otlp/otlplogs"
	"github.com/hyperdxio/opentelemetry-logs-go/exporters/otlp/otlplogs/otlplogshttp"
	sdk "github.com/hyperdxio/opentelemetry-logs-go/sdk/logs"

	"github.com/octabyte/bm-gateway/otel/metrics"
)

// OtelConfig holds the configuration for OpenTelemetry
type OtelConfig struct {
	Enabled        bool              // Enable/disable OpenTelemetry
	Endpoint       string            // OTLP endpoint host:port or URL
	ServiceName    string            // Name of your service
	ServiceVersion string            // Defaults to "dev"
	Headers        map[string]string // Authentication headers (e.g., {"authorization": "your-api-key"})
	Environment    string            // Environment (development, production, etc.)
	SampleRate     float64           // Trace sampling rate (0.0 to 1.0, where 1.0 = 100%)
}

var loggerProvider *sdk.LoggerProvider

type shutdownFunc func(context.Context) error

// InitOpenTelemetry installs the global tracer, meter and log providers and
// registers the gateway metrics. The returned function flushes and stops
// all three.
func InitOpenTelemetry(ctx context.Context, cfg OtelConfig) (func(), error) {
	if !cfg.Enabled {
		return func() {}, nil
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	res := newResource(cfg)

	var shutdowns []shutdownFunc
	stopAll := func() {
		for i := len(shutdowns) - 1; i >= 0; i-- {
			if err := shutdowns[i](ctx); err != nil {
				fmt.Fprintf(os.Stderr, "otel shutdown: %v\n", err)
			}
		}
	}

	for _, setup := range []struct {
		name string
		fn   func(context.Context, *resource.Resource, OtelConfig) (shutdownFunc, error)
	}{
		{"tracing", setupTracing},
		{"logging", setupLogging},
		{"metrics", setupMetrics},
	} {
		stop, err := setup.fn(ctx, res, cfg)
		if err != nil {
			stopAll()
			return nil, fmt.Errorf("failed to setup %s: %w", setup.name, err)
		}
		shutdowns = append(shutdowns, stop)
	}

	if err := metrics.Init(cfg.ServiceName); err != nil {
		stopAll()
		return nil, err
	}

	return stopAll, nil
}

func validateConfig(cfg OtelConfig) error {
	if cfg.ServiceName == "" {
		return errors.New("ServiceName is required")
	}
	if cfg.Endpoint == "" {
		return errors.New("Endpoint is required")
	}
	if cfg.SampleRate < 0.0 || cfg.SampleRate > 1.0 {
		return fmt.Errorf("SampleRate must be between 0.0 and 1.0, got %f", cfg.SampleRate)
	}
	return nil
}

func newResource(cfg OtelConfig) *resource.Resource {
	hostName, _ := os.Hostname()
	version := cfg.ServiceVersion
	if version == "" {
		version = "dev"
	}

	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(version),
		semconv.DeploymentEnvironment(cfg.Environment),
		semconv.HostName(hostName),
	)
}

func insecure(cfg OtelConfig) bool {
	return !strings.HasPrefix(cfg.Endpoint, "https")
}

func setupTracing(ctx context.Context, res *resource.Resource, cfg OtelConfig) (shutdownFunc, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(cfg.Headers))
	}
	if insecure(cfg) {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(cfg.SampleRate))),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider.Shutdown, nil
}

func setupLogging(ctx context.Context, res *resource.Resource, cfg OtelConfig) (shutdownFunc, error) {
	opts := []otlplogshttp.Option{otlplogshttp.WithEndpoint(cfg.Endpoint)}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlplogshttp.WithHeaders(cfg.Headers))
	}
	if insecure(cfg) {
		opts = append(opts, otlplogshttp.WithInsecure())
	}

	exporter, err := otlplogs.New(ctx, otlplogshttp.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to create log exporter: %w", err)
	}

	loggerProvider = sdk.NewLoggerProvider(
		sdk.WithBatcher(exporter),
		sdk.WithResource(res),
	)

	return loggerProvider.Shutdown, nil
}

func setupMetrics(ctx context.Context, res *resource.Resource, cfg OtelConfig) (shutdownFunc, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(cfg.Headers))
	}
	if insecure(cfg) {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	provider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter)),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}

// GetLoggerProvider returns the global logger provider
func GetLoggerProvider() *sdk.LoggerProvider {
	return loggerProvider
}
