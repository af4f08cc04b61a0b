// Package metrics provides Prometheus metrics for the task allocation engine.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the engine's Prometheus collectors.
type Manager struct {
	namespace       string
	subsystem       string
	durationBuckets []float64
	registry        prometheus.Registerer

	// Allocation outcomes
	tasksAllocated   prometheus.Counter
	tasksUnallocated prometheus.Counter
	sessionDuration  prometheus.Histogram

	// Scoring
	scorerInvocations *prometheus.CounterVec
	scorerFallbacks   *prometheus.CounterVec
	trainingLoss      prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the engine packages

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       "allocator",
		subsystem:       "engine",
		durationBuckets: prometheus.DefBuckets,
		registry:        prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.tasksAllocated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tasks_allocated_total",
		Help:      "Total number of tasks committed to an employee",
	})

	m.tasksUnallocated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tasks_unallocated_total",
		Help:      "Total number of tasks no candidate could accommodate",
	})

	m.sessionDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_duration_seconds",
		Help:      "Wall time of one allocation session",
		Buckets:   m.durationBuckets,
	})

	m.scorerInvocations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "scorer_invocations_total",
			Help:      "Total number of pair scores computed by scorer kind",
		},
		[]string{"kind"},
	)

	m.scorerFallbacks = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "scorer_fallbacks_total",
			Help:      "Total number of learned scores replaced by the heuristic",
		},
		[]string{"reason"},
	)

	m.trainingLoss = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_loss",
		Help:      "Mean squared error of the last completed training run",
	})
}

// RecordTaskAllocated increments the allocated tasks counter.
func RecordTaskAllocated() {
	globalManager.tasksAllocated.Inc()
}

// RecordTaskUnallocated increments the unallocated tasks counter.
func RecordTaskUnallocated() {
	globalManager.tasksUnallocated.Inc()
}

// ObserveSessionDuration records the duration of an allocation session in seconds.
func ObserveSessionDuration(seconds float64) {
	globalManager.sessionDuration.Observe(seconds)
}

// RecordScorerInvocation increments the invocation counter for a scorer kind.
func RecordScorerInvocation(kind string) {
	globalManager.scorerInvocations.WithLabelValues(kind).Inc()
}

// RecordScorerFallback increments the fallback counter for a failure reason.
func RecordScorerFallback(reason string) {
	globalManager.scorerFallbacks.WithLabelValues(reason).Inc()
}

// SetTrainingLoss records the final loss of a training run.
func SetTrainingLoss(loss float64) {
	globalManager.trainingLoss.Set(loss)
}

// GetRegistry returns the custom registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the registry in the text exposition format, for the
// node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
