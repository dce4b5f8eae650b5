package metrics

import (
	"context"
	"sync"

	"github.com/roomkit/guesthistory/infrastructure/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Manager registers and drives the service's named instruments.
type Manager interface {
	NewCounter(name, description string)
	NewGauge(name, description string)
	NewHistogram(name, description string, buckets ...float64)

	IncCounter(name string, attrs ...attribute.KeyValue)
	SetGauge(name string, value float64)
	RecordHistogram(name string, value float64, attrs ...attribute.KeyValue)
}

type manager struct {
	meter  metric.Meter
	logger *logger.Logger

	mu         sync.RWMutex
	counters   map[string]metric.Int64Counter
	gauges     map[string]metric.Float64Gauge
	histograms map[string]metric.Float64Histogram
}

func NewMetricsManager(meter metric.Meter, log *logger.Logger) Manager {
	return &manager{
		meter:      meter,
		logger:     log,
		counters:   make(map[string]metric.Int64Counter),
		gauges:     make(map[string]metric.Float64Gauge),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

func (m *manager) NewCounter(name, description string) {
	counter, err := m.meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		m.logger.Error("failed to create counter", zap.String("name", name), zap.Error(err))
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] = counter
}

func (m *manager) NewGauge(name, description string) {
	gauge, err := m.meter.Float64Gauge(name, metric.WithDescription(description))
	if err != nil {
		m.logger.Error("failed to create gauge", zap.String("name", name), zap.Error(err))
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = gauge
}

func (m *manager) NewHistogram(name, description string, buckets ...float64) {
	histogram, err := m.meter.Float64Histogram(name,
		metric.WithDescription(description),
		metric.WithExplicitBucketBoundaries(buckets...),
	)
	if err != nil {
		m.logger.Error("failed to create histogram", zap.String("name", name), zap.Error(err))
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.histograms[name] = histogram
}

func (m *manager) IncCounter(name string, attrs ...attribute.KeyValue) {
	m.mu.RLock()
	counter, ok := m.counters[name]
	m.mu.RUnlock()

	if ok {
		counter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	}
}

func (m *manager) SetGauge(name string, value float64) {
	m.mu.RLock()
	gauge, ok := m.gauges[name]
	m.mu.RUnlock()

	if ok {
		gauge.Record(context.Background(), value)
	}
}

func (m *manager) RecordHistogram(name string, value float64, attrs ...attribute.KeyValue) {
	m.mu.RLock()
	histogram, ok := m.histograms[name]
	m.mu.RUnlock()

	if ok {
		histogram.Record(context.Background(), value, metric.WithAttributes(attrs...))
	}
}
