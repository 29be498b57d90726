package xsink

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/omeyang/xsink/pkg/observability/xsink"

	metricEnqueued = "xsink.records.enqueued"
	metricWritten  = "xsink.records.written"
	metricPending  = "xsink.records.pending"
	metricFlushes  = "xsink.flushes"
	metricReopens  = "xsink.reopens"
	metricErrors   = "xsink.errors"
)

// metrics OTel 指标。计数同时保存在 Queue.stats 中供 Stats() 使用。
type metrics struct {
	path     string
	attrs    metric.MeasurementOption
	enqueued metric.Int64Counter
	written  metric.Int64Counter
	flushes  metric.Int64Counter
	reopens  metric.Int64Counter
	errs     metric.Int64Counter
	pending  metric.Registration
}

func newMetrics(mp metric.MeterProvider, path string, pending func() int64) (*metrics, error) {
	meter := mp.Meter(instrumentationName)
	m := &metrics{
		path:  path,
		attrs: metric.WithAttributes(attribute.String("path", path)),
	}

	var err error
	if m.enqueued, err = meter.Int64Counter(metricEnqueued,
		metric.WithDescription("Records accepted by Enqueue"),
		metric.WithUnit("{record}"),
	); err != nil {
		return nil, err
	}
	if m.written, err = meter.Int64Counter(metricWritten,
		metric.WithDescription("Records written to the file handle"),
		metric.WithUnit("{record}"),
	); err != nil {
		return nil, err
	}
	if m.flushes, err = meter.Int64Counter(metricFlushes,
		metric.WithDescription("Successful buffer flushes"),
	); err != nil {
		return nil, err
	}
	if m.reopens, err = meter.Int64Counter(metricReopens,
		metric.WithDescription("Successful file reopens after rotation"),
	); err != nil {
		return nil, err
	}
	if m.errs, err = meter.Int64Counter(metricErrors,
		metric.WithDescription("Transient io errors in the drain loop"),
	); err != nil {
		return nil, err
	}

	gauge, err := meter.Int64ObservableGauge(metricPending,
		metric.WithDescription("Records waiting in the queue"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}
	if m.pending, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(gauge, pending(), m.attrs)
		return nil
	}, gauge); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *metrics) add(c metric.Int64Counter, n int64) {
	c.Add(context.Background(), n, m.attrs)
}

func (m *metrics) addError(op string) {
	m.errs.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("path", m.path),
		attribute.String("op", op),
	))
}

func (m *metrics) unregister() error {
	return m.pending.Unregister()
}
