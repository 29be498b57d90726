package xsink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func sumValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	m, ok := findMetric(rm, name)
	require.True(t, ok, "metric %s not found", name)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is %T", name, m.Data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetrics_Counters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	path := testPath(t)

	q, cancel := runQueue(t, path, WithMeterProvider(mp))
	for _, r := range []string{"a\n", "b\n", "c\n"} {
		require.NoError(t, q.Enqueue(r))
	}
	cancel()
	q.Wait()

	rm := collect(t, reader)
	assert.Equal(t, int64(3), sumValue(t, rm, metricEnqueued))
	assert.Equal(t, int64(3), sumValue(t, rm, metricWritten))

	m, ok := findMetric(rm, metricWritten)
	require.True(t, ok)
	dp := m.Data.(metricdata.Sum[int64]).DataPoints[0]
	v, ok := dp.Attributes.Value(attribute.Key("path"))
	require.True(t, ok)
	assert.Equal(t, path, v.AsString())
}

func TestMetrics_PendingGaugeAndErrors(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	q := startQueue(t, testPath(t), WithMeterProvider(mp))

	require.NoError(t, q.Enqueue("a\n"))
	require.NoError(t, q.Enqueue("b\n"))
	q.report("flush", assert.AnError)

	rm := collect(t, reader)
	m, ok := findMetric(rm, metricPending)
	require.True(t, ok)
	gauge, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(2), gauge.DataPoints[0].Value)

	m, ok = findMetric(rm, metricErrors)
	require.True(t, ok)
	errs := m.Data.(metricdata.Sum[int64])
	require.Len(t, errs.DataPoints, 1)
	op, ok := errs.DataPoints[0].Attributes.Value(attribute.Key("op"))
	require.True(t, ok)
	assert.Equal(t, "flush", op.AsString())
}
