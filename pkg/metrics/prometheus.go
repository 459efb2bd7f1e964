// Package metrics provides Prometheus metrics for opening analysis runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label names.
const (
	labelReason   = "reason"
	labelQuestion = "question"
	labelColor    = "color"
)

// Manager owns the metrics of an analysis run.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Ingestion
	rowsRead    prometheus.Counter
	rowsDropped *prometheus.CounterVec
	records     prometheus.Gauge

	// Analysis
	analysisDuration *prometheus.HistogramVec
	analysisErrors   *prometheus.CounterVec
	findings         *prometheus.GaugeVec
	correlation      *prometheus.GaugeVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry the
// metrics are registered on prometheus.DefaultRegisterer.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "openings",
		histogramBuckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rowsRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "ingest_rows_total",
		Help:        "Dataset rows read, header excluded",
		ConstLabels: m.constLabels,
	})

	m.rowsDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "ingest_rows_dropped_total",
		Help:        "Dataset rows dropped at ingestion, by reason",
		ConstLabels: m.constLabels,
	}, []string{labelReason})

	m.records = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "store_records",
		Help:        "Records held by the record store",
		ConstLabels: m.constLabels,
	})

	m.analysisDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Name:        "analysis_duration_seconds",
		Help:        "Time spent answering one question",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{labelQuestion})

	m.analysisErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "analysis_errors_total",
		Help:        "Questions that failed, by question",
		ConstLabels: m.constLabels,
	}, []string{labelQuestion})

	m.findings = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "analysis_findings",
		Help:        "Openings or ECO codes reported by a question, by color",
		ConstLabels: m.constLabels,
	}, []string{labelQuestion, labelColor})

	m.correlation = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "analysis_correlation",
		Help:        "Pearson correlation with win rate, by question and color",
		ConstLabels: m.constLabels,
	}, []string{labelQuestion, labelColor})
}

// RecordRowRead increments the rows read counter.
func (m *Manager) RecordRowRead() { m.rowsRead.Inc() }

// RecordRowDropped increments the dropped rows counter for reason.
func (m *Manager) RecordRowDropped(reason string) { m.rowsDropped.WithLabelValues(reason).Inc() }

// UpdateRecords sets the record store size.
func (m *Manager) UpdateRecords(n int) { m.records.Set(float64(n)) }

// RecordAnalysisDuration observes the duration of a question in seconds.
func (m *Manager) RecordAnalysisDuration(question string, seconds float64) {
	m.analysisDuration.WithLabelValues(question).Observe(seconds)
}

// RecordAnalysisError increments the error counter of a question.
func (m *Manager) RecordAnalysisError(question string) {
	m.analysisErrors.WithLabelValues(question).Inc()
}

// UpdateFindings sets the number of findings of a question for color.
func (m *Manager) UpdateFindings(question, color string, n int) {
	m.findings.WithLabelValues(question, color).Set(float64(n))
}

// UpdateCorrelation sets the correlation coefficient of a question for color.
func (m *Manager) UpdateCorrelation(question, color string, r float64) {
	m.correlation.WithLabelValues(question, color).Set(r)
}

// RecordRowRead increments the global rows read counter.
func RecordRowRead() { globalManager.RecordRowRead() }

// RecordRowDropped increments the global dropped rows counter.
func RecordRowDropped(reason string) { globalManager.RecordRowDropped(reason) }

// UpdateRecords sets the global record store size.
func UpdateRecords(n int) { globalManager.UpdateRecords(n) }

// RecordAnalysisDuration observes a question duration on the global manager.
func RecordAnalysisDuration(question string, seconds float64) {
	globalManager.RecordAnalysisDuration(question, seconds)
}

// RecordAnalysisError counts a failed question on the global manager.
func RecordAnalysisError(question string) { globalManager.RecordAnalysisError(question) }

// UpdateFindings sets a findings gauge on the global manager.
func UpdateFindings(question, color string, n int) {
	globalManager.UpdateFindings(question, color, n)
}

// UpdateCorrelation sets a correlation gauge on the global manager.
func UpdateCorrelation(question, color string, r float64) {
	globalManager.UpdateCorrelation(question, color, r)
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes every metric of the custom registry to path in the
// text exposition format, for the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
