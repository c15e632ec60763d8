package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordBeforeInitIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordRefresh(context.Background(), RefreshOutcomeSuccess, time.Second)
	})
}

func TestRecord(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)
	defer provider.Shutdown(context.Background())

	require.NoError(t, Init("bm-gateway-test"))

	ctx := context.Background()
	RecordRequest(ctx, "GET", "/projects", 401, 10*time.Millisecond)
	RecordRequest(ctx, "GET", "/projects", 200, 10*time.Millisecond)
	RecordReplay(ctx, false)
	RecordRefresh(ctx, RefreshOutcomeSuccess, 20*time.Millisecond)
	IncrementInFlightRequests(ctx, "GET")
	DecrementInFlightRequests(ctx, "GET")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(2), sums["gateway_requests_total"])
	assert.Equal(t, int64(1), sums["gateway_refresh_total"])
	assert.Equal(t, int64(1), sums["gateway_replays_total"])
	assert.Equal(t, int64(0), sums["gateway_requests_in_flight"])
}
