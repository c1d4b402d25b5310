package monitoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestInstrumentsUsableBeforeInit(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		PaymentCounter.Add(ctx, 1)
		PaymentAmount.Record(ctx, 10.5)
		StepDuration.Record(ctx, 0.1)
		HTTPServerDuration.Record(ctx, 3)
	})
}

func TestRegisterInstruments_RecordsPayments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	require.NoError(t, registerInstruments(mp.Meter("test")))

	ctx := context.Background()
	PaymentCounter.Add(ctx, 2, metric.WithAttributes(attribute.String("status", "success")))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	var found bool
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name != "payments_processed_total" {
			continue
		}
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 1)
		assert.Equal(t, int64(2), sum.DataPoints[0].Value)
		found = true
	}
	assert.True(t, found)

	t.Cleanup(func() { _ = mp.Shutdown(ctx) })
}

func TestInitMeter_UnknownExporter(t *testing.T) {
	_, _, err := InitMeter("test", "localhost:4317", "statsd")
	assert.Error(t, err)
}
