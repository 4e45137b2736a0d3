package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	translationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "polisq_translations_total",
			Help: "Total number of natural-language to SQL translation attempts.",
		},
	)
	translationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "polisq_translation_failures_total",
			Help: "Total number of failed translation attempts.",
		},
	)
	translationLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "polisq_translation_latency_ms",
			Help:    "Completion-service round trip latency in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000},
		},
	)
	executionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "polisq_executions_total",
			Help: "Total number of SQL statements executed against the store.",
		},
	)
	executionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "polisq_execution_failures_total",
			Help: "Total number of SQL executions that returned a database error.",
		},
	)
	executionLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "polisq_execution_latency_ms",
			Help:    "Statement execution latency in milliseconds.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)
	seededRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polisq_seeded_rows_total",
			Help: "Total number of fixture rows inserted, by table.",
		},
		[]string{"table"},
	)
)

func init() {
	prometheus.MustRegister(
		translationsTotal,
		translationFailuresTotal,
		translationLatencyMs,
		executionsTotal,
		executionFailuresTotal,
		executionLatencyMs,
		seededRowsTotal,
	)
}

func ObserveTranslation(elapsed time.Duration, failed bool) {
	translationsTotal.Inc()
	if failed {
		translationFailuresTotal.Inc()
	}
	translationLatencyMs.Observe(float64(elapsed.Milliseconds()))
}

func ObserveExecution(elapsed time.Duration, failed bool) {
	executionsTotal.Inc()
	if failed {
		executionFailuresTotal.Inc()
	}
	executionLatencyMs.Observe(float64(elapsed.Milliseconds()))
}

func AddSeededRows(table string, count int) {
	if count > 0 {
		seededRowsTotal.WithLabelValues(table).Add(float64(count))
	}
}
