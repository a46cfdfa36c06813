// Package metrics provides Prometheus metrics for the capsule wardrobe service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the capsule service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Wardrobe metrics
	itemsRegistered prometheus.Counter
	wardrobeSize    prometheus.Gauge
	wardrobeClears  prometheus.Counter

	// Generation metrics
	candidatesEnumerated prometheus.Counter
	candidatesCapped     prometheus.Counter
	generationDuration   prometheus.Histogram
	scoringLatency       prometheus.Histogram
	scoringErrors        prometheus.Counter
	calendarsGenerated   prometheus.Counter
	calendarFillRatio    prometheus.Gauge

	// Pipeline health metrics
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	workerCount   prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "capsule",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.itemsRegistered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "items_registered_total",
		Help:      "Total number of wardrobe items registered",
	})

	m.wardrobeSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "wardrobe_size",
		Help:      "Current number of items in the wardrobe",
	})

	m.wardrobeClears = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "wardrobe_clears_total",
		Help:      "Total number of wardrobe clear operations",
	})

	m.candidatesEnumerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_enumerated_total",
		Help:      "Total number of outfit candidates enumerated",
	})

	m.candidatesCapped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_capped_total",
		Help:      "Number of times enumeration stopped at the per-skeleton cap",
	})

	m.generationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "generation_duration_milliseconds",
		Help:      "End-to-end capsule generation duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "Per-candidate scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.scoringErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_errors_total",
		Help:      "Total number of candidate scoring errors",
	})

	m.calendarsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "calendars_generated_total",
		Help:      "Total number of capsule calendars generated",
	})

	m.calendarFillRatio = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "calendar_fill_ratio",
		Help:      "Filled day-slots over total day-slots for the last generation",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current size of the candidate scoring queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Configured capacity of the candidate scoring queue",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of scoring workers in the last generation pass",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers delegating to the global manager.

// RecordItemRegistered increments the registered items counter.
func RecordItemRegistered() {
	globalManager.itemsRegistered.Inc()
}

// UpdateWardrobeSize sets the current wardrobe size gauge.
func UpdateWardrobeSize(size int) {
	globalManager.wardrobeSize.Set(float64(size))
}

// RecordWardrobeClear increments the wardrobe clear counter.
func RecordWardrobeClear() {
	globalManager.wardrobeClears.Inc()
}

// RecordCandidatesEnumerated adds to the enumerated candidates counter.
func RecordCandidatesEnumerated(count int) {
	globalManager.candidatesEnumerated.Add(float64(count))
}

// RecordCandidatesCapped increments the cap-hit counter.
func RecordCandidatesCapped() {
	globalManager.candidatesCapped.Inc()
}

// RecordGenerationDuration observes an end-to-end generation duration.
func RecordGenerationDuration(durationMs float64) {
	globalManager.generationDuration.Observe(durationMs)
}

// RecordScoringLatency observes a per-candidate scoring latency.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordScoringError increments the scoring error counter.
func RecordScoringError() {
	globalManager.scoringErrors.Inc()
}

// RecordCalendarGenerated increments the generated calendars counter.
func RecordCalendarGenerated() {
	globalManager.calendarsGenerated.Inc()
}

// UpdateCalendarFillRatio sets the fill ratio for the last generation.
func UpdateCalendarFillRatio(ratio float64) {
	globalManager.calendarFillRatio.Set(ratio)
}

// UpdateQueueSize sets the current candidate queue size gauge.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the candidate queue capacity gauge.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateWorkerCount sets the scoring worker count gauge.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
