package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitOpenTelemetryDisabled(t *testing.T) {
	shutdown, err := InitOpenTelemetry(context.Background(), OtelConfig{Enabled: false})
	require.NoError(t, err)
	shutdown()
}

func TestInitOpenTelemetryInvalid(t *testing.T) {
	testCases := []struct {
		name string
		cfg  OtelConfig
	}{
		{"missing service", OtelConfig{Enabled: true, Endpoint: "localhost:4318"}},
		{"missing endpoint", OtelConfig{Enabled: true, ServiceName: "bm-gateway"}},
		{"sample rate", OtelConfig{Enabled: true, ServiceName: "bm-gateway", Endpoint: "localhost:4318", SampleRate: 1.5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := InitOpenTelemetry(context.Background(), tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestInitOpenTelemetryEnabled(t *testing.T) {
	shutdown, err := InitOpenTelemetry(context.Background(), OtelConfig{
		Enabled:     true,
		ServiceName: "bm-gateway",
		Environment: "test",
		Endpoint:    "localhost:4318",
		SampleRate:  1.0,
	})
	require.NoError(t, err)
	assert.NotNil(t, GetLoggerProvider())
	shutdown()
}

func TestNewResource(t *testing.T) {
	res := newResource(OtelConfig{ServiceName: "bm-gateway", Environment: "test"})
	require.NotNil(t, res)

	found := false
	for _, kv := range res.Attributes() {
		if kv.Key == "service.version" {
			found = true
			assert.Equal(t, "dev", kv.Value.AsString())
		}
	}
	assert.True(t, found)
}
