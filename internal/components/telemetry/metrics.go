package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsAPI forwards every report to an inner API and additionally
// publishes ReportCount values as one observable gauge keyed by id.
type MetricsAPI struct {
	inner API
	state *countState
}

type countState struct {
	mu     sync.Mutex
	values map[string]int64
}

func (s *countState) observe(_ context.Context, o metric.Int64Observer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.values {
		o.Observe(n, metric.WithAttributes(attribute.String("id", id)))
	}
	return nil
}

func NewMetricsAPI(inner API, meter metric.Meter) (MetricsAPI, error) {
	state := &countState{values: map[string]int64{}}
	_, err := meter.Int64ObservableGauge(
		"volby.count",
		metric.WithDescription("latest value reported through ReportCount"),
		metric.WithInt64Callback(state.observe),
	)
	if err != nil {
		return MetricsAPI{}, err
	}
	return MetricsAPI{inner: inner, state: state}, nil
}

func (m MetricsAPI) ReportBroken(id string, params ...any) {
	m.inner.ReportBroken(id, params...)
}

func (m MetricsAPI) ReportWarning(id string, params ...any) {
	m.inner.ReportWarning(id, params...)
}

func (m MetricsAPI) ReportDebug(msg string, params ...any) {
	m.inner.ReportDebug(msg, params...)
}

func (m MetricsAPI) ReportCount(id string, count int64) {
	m.state.mu.Lock()
	m.state.values[id] = count
	m.state.mu.Unlock()
	m.inner.ReportCount(id, count)
}
