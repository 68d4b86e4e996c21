// Package metrics provides Prometheus metrics for the profile leaderboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Key-value store interactions
	kvOperations *prometheus.CounterVec
	kvOpLatency  *prometheus.HistogramVec

	// Sessions
	sessionsCreated   prometheus.Counter
	sessionsDestroyed prometheus.Counter

	// Profiles
	profileMutations  *prometheus.CounterVec
	profileCount      prometheus.Gauge
	backgroundUpdates prometheus.Counter

	// System health
	systemMemory     prometheus.Gauge
	systemGoroutines prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "profiles",
		subsystem:        "site",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus collectors.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
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

	m.kvOperations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "kv_operations_total",
			Help:      "Total number of key-value store operations by op and outcome",
		},
		[]string{"op", "outcome"},
	)

	m.kvOpLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "kv_operation_latency_milliseconds",
			Help:      "Key-value store operation latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"op"},
	)

	m.sessionsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_created_total",
		Help:      "Total number of admin sessions created",
	})

	m.sessionsDestroyed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_destroyed_total",
		Help:      "Total number of admin sessions explicitly destroyed",
	})

	m.profileMutations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "profile_mutations_total",
			Help:      "Total number of profile mutations by operation",
		},
		[]string{"op"},
	)

	m.profileCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "profile_count",
		Help:      "Number of profiles currently on the leaderboard",
	})

	m.backgroundUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "background_updates_total",
		Help:      "Total number of background URL updates",
	})

	m.systemMemory = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated memory in bytes",
	})

	m.systemGoroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordKVOperation records a key-value store operation and its latency.
func RecordKVOperation(op, outcome string, latencyMs float64) {
	globalManager.kvOperations.WithLabelValues(op, outcome).Inc()
	globalManager.kvOpLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordSessionCreated increments the created-sessions counter.
func RecordSessionCreated() {
	globalManager.sessionsCreated.Inc()
}

// RecordSessionDestroyed increments the destroyed-sessions counter.
func RecordSessionDestroyed() {
	globalManager.sessionsDestroyed.Inc()
}

// RecordProfileMutation records a create/update/delete on the collection.
func RecordProfileMutation(op string) {
	globalManager.profileMutations.WithLabelValues(op).Inc()
}

// UpdateProfileCount sets the current leaderboard size.
func UpdateProfileCount(count int) {
	globalManager.profileCount.Set(float64(count))
}

// RecordBackgroundUpdate increments the background-update counter.
func RecordBackgroundUpdate() {
	globalManager.backgroundUpdates.Inc()
}

// UpdateSystemMemoryUsage sets the current allocated memory.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemory.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutines.Set(float64(count))
}

// GetRegistry returns the custom registry used for all service metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
