package retroflow

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the call lifecycle:
// outcomes per variant, durations, in-flight calls, fixture substitutions,
// pipeline errors and observer panics. It is safe for concurrent use.
type MetricsCollector struct {
	callsTotal    *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
	callsInFlight *prometheus.GaugeVec

	mockHits *prometheus.CounterVec

	observerPanics *prometheus.CounterVec

	errorsTotal *prometheus.CounterVec

	registry prometheus.Registerer
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	mc := &MetricsCollector{
		callsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "retroflow_calls_total",
				Help: "Total number of calls by outcome variant",
			},
			[]string{"method", "endpoint", "outcome", "status_code"},
		),
		callDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "retroflow_call_duration_seconds",
				Help:    "Duration of calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "outcome"},
		),
		callsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "retroflow_calls_in_flight",
				Help: "Number of calls currently in flight",
			},
			[]string{"method", "endpoint"},
		),
		mockHits: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "retroflow_mock_hits_total",
				Help: "Total number of calls answered from a fixture",
			},
			[]string{"method", "endpoint"},
		),
		observerPanics: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "retroflow_observer_panics_total",
				Help: "Total number of recovered observer panics",
			},
			[]string{"endpoint"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "retroflow_errors_total",
				Help: "Total number of pipeline errors by type",
			},
			[]string{"type", "method", "endpoint"},
		),
		registry: registry,
	}

	return mc
}

// RecordCall records outcome and duration of a completed call.
func (mc *MetricsCollector) RecordCall(method, endpoint, outcome string, statusCode int, duration time.Duration) {
	if mc == nil {
		return
	}

	statusCodeStr := strconv.Itoa(statusCode)
	mc.callsTotal.WithLabelValues(method, endpoint, outcome, statusCodeStr).Inc()
	mc.callDuration.WithLabelValues(method, endpoint, outcome).Observe(duration.Seconds())
}

// RecordCallStart increments in-flight gauge.
func (mc *MetricsCollector) RecordCallStart(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.callsInFlight.WithLabelValues(method, endpoint).Inc()
}

// RecordCallEnd decrements in-flight gauge.
func (mc *MetricsCollector) RecordCallEnd(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.callsInFlight.WithLabelValues(method, endpoint).Dec()
}

// RecordMockHit increments the fixture substitution counter.
func (mc *MetricsCollector) RecordMockHit(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.mockHits.WithLabelValues(method, endpoint).Inc()
}

// RecordObserverPanic increments the recovered observer panic counter.
func (mc *MetricsCollector) RecordObserverPanic(endpoint string) {
	if mc == nil {
		return
	}

	mc.observerPanics.WithLabelValues(endpoint).Inc()
}

// RecordError increments error counter by type.
func (mc *MetricsCollector) RecordError(errorType, method, endpoint string) {
	if mc == nil {
		return
	}

	mc.errorsTotal.WithLabelValues(errorType, method, endpoint).Inc()
}

// Registerer exposes the registerer the collector was built on.
func (mc *MetricsCollector) Registerer() prometheus.Registerer {
	return mc.registry
}
