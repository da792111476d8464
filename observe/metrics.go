package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricRequests         = "mockhealth.requests.total"
	MetricRequestDuration  = "mockhealth.request.duration_ms"
	MetricToggles          = "mockhealth.toggles.total"
	MetricComponentHealthy = "mockhealth.component.healthy"
)

// Metrics records mock server measurements.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: recording must not panic.
type Metrics interface {
	// RecordRequest records one served request.
	RecordRequest(ctx context.Context, meta RequestMeta, statusCode int, duration time.Duration)

	// RecordToggle records one accepted toggle.
	RecordToggle(ctx context.Context, component string, healthy bool)

	// ObserveComponents registers a gauge reporting 1 (healthy) or 0
	// (unhealthy) for every entry returned by snapshot.
	ObserveComponents(snapshot func() map[string]bool) error
}

type metricsImpl struct {
	meter        metric.Meter
	requestCount metric.Int64Counter
	toggleCount  metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates a Metrics instance backed by the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	requestCount, err := meter.Int64Counter(
		MetricRequests,
		metric.WithDescription("Total number of mock requests served"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	toggleCount, err := meter.Int64Counter(
		MetricToggles,
		metric.WithDescription("Total number of accepted toggles"),
		metric.WithUnit("{toggle}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		MetricRequestDuration,
		metric.WithDescription("Mock request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		requestCount: requestCount,
		toggleCount:  toggleCount,
		durationHist: durationHist,
	}, nil
}

func (m *metricsImpl) RecordRequest(ctx context.Context, meta RequestMeta, statusCode int, duration time.Duration) {
	opt := metric.WithAttributes(
		attribute.String(AttrRoute, meta.Route),
		attribute.Int(AttrStatusCode, statusCode),
	)

	m.requestCount.Add(ctx, 1, opt)
	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

func (m *metricsImpl) RecordToggle(ctx context.Context, component string, healthy bool) {
	m.toggleCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrComponent, component),
		attribute.Bool(AttrHealthy, healthy),
	))
}

func (m *metricsImpl) ObserveComponents(snapshot func() map[string]bool) error {
	_, err := m.meter.Int64ObservableGauge(
		MetricComponentHealthy,
		metric.WithDescription("Current synthetic health flag per component (1 healthy, 0 unhealthy)"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			for name, healthy := range snapshot() {
				var v int64
				if healthy {
					v = 1
				}
				o.Observe(v, metric.WithAttributes(attribute.String(AttrComponent, name)))
			}
			return nil
		}),
	)
	return err
}

// NoopMetrics returns a Metrics implementation that does nothing.
func NoopMetrics() Metrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) RecordRequest(context.Context, RequestMeta, int, time.Duration) {}
func (noopMetrics) RecordToggle(context.Context, string, bool)                     {}
func (noopMetrics) ObserveComponents(func() map[string]bool) error                 { return nil }
