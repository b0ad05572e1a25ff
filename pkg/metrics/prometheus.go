// Package metrics provides Prometheus metrics for the connectivity comparison service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Comparison engine
	comparisons        *prometheus.CounterVec
	comparisonDuration *prometheus.HistogramVec
	comparisonSize     prometheus.Histogram

	// Upstream indicator source
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  prometheus.Histogram
	upstreamRetries  prometheus.Counter
	breakerState     prometheus.Gauge

	// Series cache
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec

	// Upload ingestion
	uploadRows   prometheus.Histogram
	uploadErrors *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "dss",
		subsystem:        "connectivity",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.comparisons = auto.NewCounterVec(m.counterOpts("comparisons_total",
		"Comparisons served by source (api, upload, rows) and outcome"), []string{"source", "outcome"})
	m.comparisonDuration = auto.NewHistogramVec(m.histogramOpts("comparison_duration_milliseconds",
		"End-to-end comparison latency including upstream fetch", m.histogramBuckets), []string{"source"})
	m.comparisonSize = auto.NewHistogram(m.histogramOpts("comparison_countries",
		"Countries per comparison after consolidation", []float64{1, 2, 3, 4, 6, 8, 12, 20, 50}))

	m.upstreamRequests = auto.NewCounterVec(m.counterOpts("upstream_requests_total",
		"Indicator API requests by indicator and outcome"), []string{"indicator", "outcome"})
	m.upstreamLatency = auto.NewHistogram(m.histogramOpts("upstream_latency_milliseconds",
		"Indicator API request latency", m.histogramBuckets))
	m.upstreamRetries = auto.NewCounter(m.counterOpts("upstream_retries_total",
		"Indicator API retry attempts"))
	m.breakerState = auto.NewGauge(m.gaugeOpts("upstream_breaker_state",
		"Circuit breaker state: 0 closed, 1 half-open, 2 open"))

	m.cacheHits = auto.NewCounterVec(m.counterOpts("cache_hits_total",
		"Series cache hits by backend"), []string{"backend"})
	m.cacheMisses = auto.NewCounterVec(m.counterOpts("cache_misses_total",
		"Series cache misses by backend"), []string{"backend"})

	m.uploadRows = auto.NewHistogram(m.histogramOpts("upload_rows",
		"Usable rows per uploaded file", []float64{1, 5, 10, 25, 50, 100, 500, 1000}))
	m.uploadErrors = auto.NewCounterVec(m.counterOpts("upload_errors_total",
		"Rejected uploads by reason"), []string{"reason"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets), []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"HTTP errors by endpoint, method and error type"), []string{"endpoint", "method", "error_type"})
	m.errorsByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total",
		"HTTP errors by type and severity"), []string{"error_type", "severity"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordComparison counts a comparison and observes its latency.
func (m *Manager) RecordComparison(source, outcome string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.comparisons.WithLabelValues(source, outcome).Inc()
	m.comparisonDuration.WithLabelValues(source).Observe(latencyMs)
}

// RecordComparisonSize observes the number of countries compared.
func (m *Manager) RecordComparisonSize(countries int) {
	if m.enabled {
		m.comparisonSize.Observe(float64(countries))
	}
}

// RecordUpstreamRequest counts an upstream request and observes its latency.
func (m *Manager) RecordUpstreamRequest(indicator, outcome string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.upstreamRequests.WithLabelValues(indicator, outcome).Inc()
	m.upstreamLatency.Observe(latencyMs)
}

// RecordUpstreamRetry counts one retry attempt.
func (m *Manager) RecordUpstreamRetry() {
	if m.enabled {
		m.upstreamRetries.Inc()
	}
}

// UpdateBreakerState sets the circuit breaker state gauge.
func (m *Manager) UpdateBreakerState(state int) {
	if m.enabled {
		m.breakerState.Set(float64(state))
	}
}

// RecordCacheHit counts a series cache hit.
func (m *Manager) RecordCacheHit(backend string) {
	if m.enabled {
		m.cacheHits.WithLabelValues(backend).Inc()
	}
}

// RecordCacheMiss counts a series cache miss.
func (m *Manager) RecordCacheMiss(backend string) {
	if m.enabled {
		m.cacheMisses.WithLabelValues(backend).Inc()
	}
}

// RecordUploadRows observes the usable rows of an accepted upload.
func (m *Manager) RecordUploadRows(rows int) {
	if m.enabled {
		m.uploadRows.Observe(float64(rows))
	}
}

// RecordUploadError counts a rejected upload.
func (m *Manager) RecordUploadError(reason string) {
	if m.enabled {
		m.uploadErrors.WithLabelValues(reason).Inc()
	}
}

// RecordHTTPRequest counts an HTTP request and observes its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError counts an HTTP error by endpoint and by type.
func (m *Manager) RecordHTTPError(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystem sets the memory and goroutine gauges.
func (m *Manager) UpdateSystem(memoryBytes uint64, goroutines int) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memoryBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// RecordGCPause observes an average GC pause.
func (m *Manager) RecordGCPause(pauseMs float64) {
	if m.enabled {
		m.systemGCPauseTime.Observe(pauseMs)
	}
}

// Package-level helpers delegate to the global manager.

// RecordComparison counts a comparison on the global manager.
func RecordComparison(source, outcome string, latencyMs float64) {
	globalManager.RecordComparison(source, outcome, latencyMs)
}

// RecordComparisonSize observes the number of countries compared.
func RecordComparisonSize(countries int) { globalManager.RecordComparisonSize(countries) }

// RecordUpstreamRequest counts an upstream request on the global manager.
func RecordUpstreamRequest(indicator, outcome string, latencyMs float64) {
	globalManager.RecordUpstreamRequest(indicator, outcome, latencyMs)
}

// RecordUpstreamRetry counts one retry attempt.
func RecordUpstreamRetry() { globalManager.RecordUpstreamRetry() }

// UpdateBreakerState sets the circuit breaker state gauge.
func UpdateBreakerState(state int) { globalManager.UpdateBreakerState(state) }

// RecordCacheHit counts a series cache hit.
func RecordCacheHit(backend string) { globalManager.RecordCacheHit(backend) }

// RecordCacheMiss counts a series cache miss.
func RecordCacheMiss(backend string) { globalManager.RecordCacheMiss(backend) }

// RecordUploadRows observes the usable rows of an accepted upload.
func RecordUploadRows(rows int) { globalManager.RecordUploadRows(rows) }

// RecordUploadError counts a rejected upload.
func RecordUploadError(reason string) { globalManager.RecordUploadError(reason) }

// RecordHTTPRequest counts an HTTP request and observes its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordHTTPError counts an HTTP error by endpoint and by type.
func RecordHTTPError(endpoint, method, errorType, severity string) {
	globalManager.RecordHTTPError(endpoint, method, errorType, severity)
}

// UpdateSystem sets the memory and goroutine gauges.
func UpdateSystem(memoryBytes uint64, goroutines int) {
	globalManager.UpdateSystem(memoryBytes, goroutines)
}

// RecordGCPause observes an average GC pause.
func RecordGCPause(pauseMs float64) { globalManager.RecordGCPause(pauseMs) }

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
