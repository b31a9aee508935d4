package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestScopedAPI(t *testing.T) {
	rec := NewRecordingAPI()
	tel := NewScopedAPI("crawler", rec)

	tel.ReportWarning("listing.classify-row", "short row")
	tel.ReportBroken("crawler.aggregate-leaf", "boom")
	tel.ReportCount("crawler.records", 4)

	warnings := rec.Reports("warning", "listing.classify-row")
	require.Len(t, warnings, 1)
	require.Equal(t, "crawler: listing.classify-row", warnings[0].ID)
	require.Equal(t, []any{"short row"}, warnings[0].Params)

	require.Len(t, rec.Reports("broken", "aggregate-leaf"), 1)
	require.Empty(t, rec.Reports("debug", ""))

	n, ok := rec.Count("crawler.records")
	require.True(t, ok)
	require.Equal(t, int64(4), n)
}

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "test:telemetry", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestMetricsAPI(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	rec := NewRecordingAPI()
	tel, err := NewMetricsAPI(rec, provider.Meter("test"))
	require.NoError(t, err)

	tel.ReportCount("crawler.records", 3)
	tel.ReportCount("crawler.records", 7)
	tel.ReportWarning("listing.find-table")

	var data metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &data))
	require.Len(t, data.ScopeMetrics, 1)
	require.Len(t, data.ScopeMetrics[0].Metrics, 1)

	gauge, ok := data.ScopeMetrics[0].Metrics[0].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	require.Equal(t, int64(7), gauge.DataPoints[0].Value)

	n, ok := rec.Count("crawler.records")
	require.True(t, ok)
	require.Equal(t, int64(7), n)
	require.Len(t, rec.Reports("warning", "listing.find-table"), 1)
}
