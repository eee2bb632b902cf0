package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	classificationTotal    prometheus.Counter
	classificationDuration prometheus.Histogram
	unmatchedCodesTotal    prometheus.Counter
	datasetTransactions    prometheus.Gauge
	datasetUsers           prometheus.Gauge
	queryDuration          *prometheus.HistogramVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		classificationTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "classification_runs_total",
				Help: "Total number of classification runs",
			},
		),
		classificationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "classification_duration_milliseconds",
				Help:    "Classification run duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		unmatchedCodesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "classification_unmatched_codes_total",
				Help: "Transactions whose MCC code had no reference entry",
			},
		),
		datasetTransactions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dataset_transactions",
				Help: "Number of transactions in the current dataset snapshot",
			},
		),
		datasetUsers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dataset_users",
				Help: "Number of distinct users in the current dataset snapshot",
			},
		),
		queryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_query_duration_seconds",
				Help:    "Analytics query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
}

func (m *PrometheusMetrics) RecordClassification(duration time.Duration, total, unmatched int) {
	m.classificationTotal.Inc()
	m.classificationDuration.Observe(float64(duration.Milliseconds()))
	m.unmatchedCodesTotal.Add(float64(unmatched))
}

func (m *PrometheusMetrics) RecordDatasetSize(transactions int, users int) {
	m.datasetTransactions.Set(float64(transactions))
	m.datasetUsers.Set(float64(users))
}

func (m *PrometheusMetrics) RecordQuery(endpoint string, duration time.Duration) {
	m.queryDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
