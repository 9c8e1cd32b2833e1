package telemetry_test

import (
	"context"
	"testing"

	"farmtrade/internal/adapters/out/telemetry"
	"farmtrade/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestFulfillmentMetrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics, err := telemetry.NewFulfillmentMetrics(provider)
	require.NoError(t, err)

	amount, err := kernel.NewMoney(decimal.RequireFromString("250.50"))
	require.NoError(t, err)

	metrics.OrderCreated(ctx)
	metrics.OrderCreated(ctx)
	metrics.PaymentRecorded(ctx, "upi", amount)
	metrics.PaymentRecorded(ctx, "upi", amount)
	metrics.PaymentRedriven(ctx, "applied")
	metrics.TransportTransition(ctx, "", "scheduled")
	metrics.TransportTransition(ctx, "scheduled", "in_transit")

	data := collect(t, reader)

	t.Run("orders.created", func(t *testing.T) {
		sum, ok := data["orders.created"].(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 1)
		assert.Equal(t, int64(2), sum.DataPoints[0].Value)
	})

	t.Run("payments by method", func(t *testing.T) {
		count, ok := data["payments.recorded"].(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, count.DataPoints, 1)
		assert.Equal(t, int64(2), count.DataPoints[0].Value)
		method, _ := count.DataPoints[0].Attributes.Value(attribute.Key("method"))
		assert.Equal(t, "upi", method.AsString())

		total, ok := data["payments.amount"].(metricdata.Sum[float64])
		require.True(t, ok)
		assert.InDelta(t, 501.0, total.DataPoints[0].Value, 0.001)
	})

	t.Run("transport transitions label the initial state", func(t *testing.T) {
		sum, ok := data["transport.transitions"].(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 2)

		froms := map[string]bool{}
		for _, dp := range sum.DataPoints {
			v, _ := dp.Attributes.Value(attribute.Key("from"))
			froms[v.AsString()] = true
		}
		assert.True(t, froms["none"])
		assert.True(t, froms["scheduled"])
	})

	t.Run("re-drive outcomes", func(t *testing.T) {
		sum, ok := data["payments.redriven"].(metricdata.Sum[int64])
		require.True(t, ok)
		outcome, _ := sum.DataPoints[0].Attributes.Value(attribute.Key("outcome"))
		assert.Equal(t, "applied", outcome.AsString())
	})
}

func TestNewMeterProvider(t *testing.T) {
	t.Run("should fall back to a no-op provider without an endpoint", func(t *testing.T) {
		provider, shutdown, err := telemetry.NewMeterProvider(context.Background(), "farmtrade", "")
		require.NoError(t, err)

		metrics, err := telemetry.NewFulfillmentMetrics(provider)
		require.NoError(t, err)
		metrics.OrderCreated(context.Background())

		require.NoError(t, shutdown(context.Background()))
	})

	t.Run("should build an exporting provider for an endpoint", func(t *testing.T) {
		provider, shutdown, err := telemetry.NewMeterProvider(context.Background(), "farmtrade", "localhost:4318")
		require.NoError(t, err)
		_, isSDK := provider.(*sdkmetric.MeterProvider)
		assert.True(t, isSDK)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_ = shutdown(ctx)
	})
}
