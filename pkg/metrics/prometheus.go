// Package metrics provides Prometheus metrics for the payerlens engine.
package metrics

import (
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Kinds of scoring recorded under scorings_total.
const (
	KindPhysician  = "physician"
	KindPractice   = "practice"
	KindReputation = "reputation"
	KindCompare    = "compare"
	KindFMV        = "fmv"
	KindPosition   = "position"
)

// Manager owns one registry and the engine metrics registered on it.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	constLabels    map[string]string
	registry       *prometheus.Registry

	scorings           *prometheus.CounterVec
	playbooks          prometheus.Counter
	invalidInputs      *prometheus.CounterVec
	referenceFallbacks *prometheus.CounterVec
	operationLatency   *prometheus.HistogramVec
	successProbability prometheus.Histogram
	batchInFlight      prometheus.Gauge
	batchItems         *prometheus.CounterVec
	tablesInfo         *prometheus.GaugeVec
	tablesReloads      prometheus.Counter
	errorsByComponent  *prometheus.CounterVec
}

var global atomic.Pointer[Manager] //nolint:gochecknoglobals // process-wide metrics

func init() { //nolint:gochecknoinits // metrics are usable before Init
	global.Store(NewManager())
}

// Init replaces the global manager with one built from opts on a fresh
// registry unless WithRegistry is given.
func Init(opts ...Option) *Manager {
	m := NewManager(opts...)
	global.Store(m)
	return m
}

// NewManager creates a manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "payerlens",
		subsystem:      "engine",
		latencyBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		registry:       prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scorings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "scorings_total",
		Help:        "Scoring and benchmark operations completed, by kind",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.playbooks = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "playbooks_total",
		Help:        "Negotiation playbooks built",
		ConstLabels: m.constLabels,
	})

	m.invalidInputs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "invalid_inputs_total",
		Help:        "Requests rejected by validation, by operation",
		ConstLabels: m.constLabels,
	}, []string{"operation"})

	m.referenceFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reference_fallbacks_total",
		Help:        "Lookups that fell back to the default reference row, by operation",
		ConstLabels: m.constLabels,
	}, []string{"operation"})

	m.operationLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "operation_latency_milliseconds",
		Help:        "Operation latency in milliseconds",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, []string{"operation"})

	m.successProbability = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "playbook_success_probability_percent",
		Help:        "Estimated success probability of built playbooks",
		Buckets:     prometheus.LinearBuckets(10, 10, 9),
		ConstLabels: m.constLabels,
	})

	m.batchInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_in_flight",
		Help:        "Batch items currently being processed",
		ConstLabels: m.constLabels,
	})

	m.batchItems = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_items_total",
		Help:        "Batch items processed, by batch kind and outcome",
		ConstLabels: m.constLabels,
	}, []string{"kind", "outcome"})

	m.tablesInfo = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reference_tables_info",
		Help:        "Active reference tables version; the current version reports 1",
		ConstLabels: m.constLabels,
	}, []string{"version"})

	m.tablesReloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reference_tables_swaps_total",
		Help:        "Reference table snapshots installed",
		ConstLabels: m.constLabels,
	})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_component_total",
		Help:        "Errors by component and type",
		ConstLabels: m.constLabels,
	}, []string{"component", "error_type"})
}

// Registry returns the manager's registry.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes the manager's registry in the text exposition
// format, for node_exporter's textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// RecordScoring counts a completed operation of kind.
func RecordScoring(kind string) {
	global.Load().scorings.WithLabelValues(kind).Inc()
}

// RecordPlaybook counts a built playbook and its success probability.
func RecordPlaybook(successProbability float64) {
	m := global.Load()
	m.playbooks.Inc()
	m.successProbability.Observe(successProbability)
}

// RecordInvalidInput counts a validation failure for operation.
func RecordInvalidInput(operation string) {
	global.Load().invalidInputs.WithLabelValues(operation).Inc()
}

// RecordReferenceFallback counts a default-row lookup for operation.
func RecordReferenceFallback(operation string) {
	global.Load().referenceFallbacks.WithLabelValues(operation).Inc()
}

// RecordOperationLatency records operation latency in milliseconds.
func RecordOperationLatency(operation string, latencyMs float64) {
	global.Load().operationLatency.WithLabelValues(operation).Observe(latencyMs)
}

// AddBatchInFlight adjusts the in-flight batch gauge by delta.
func AddBatchInFlight(delta int) {
	global.Load().batchInFlight.Add(float64(delta))
}

// RecordBatchItem counts one batch item of kind with outcome ok or error.
func RecordBatchItem(kind, outcome string) {
	global.Load().batchItems.WithLabelValues(kind, outcome).Inc()
}

// SetReferenceTables marks version as the active reference tables.
func SetReferenceTables(version string) {
	m := global.Load()
	m.tablesInfo.Reset()
	m.tablesInfo.WithLabelValues(version).Set(1)
	m.tablesReloads.Inc()
}

// RecordError records an error with component and type labels.
func RecordError(component, errorType string) {
	global.Load().errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the registry of the global manager.
func GetRegistry() *prometheus.Registry {
	return global.Load().registry
}

// WriteTextfile exports the global manager's registry to path.
func WriteTextfile(path string) error {
	return global.Load().WriteTextfile(path)
}
