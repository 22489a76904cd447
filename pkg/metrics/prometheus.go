package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FeedsProcessed prometheus.Counter
	RowsImported   prometheus.Counter
	AlertsSent     prometheus.Counter
	ImportTime     prometheus.Histogram
	DiffChanges    *prometheus.CounterVec
	ErrorsCount    *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FeedsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feeds_processed_total",
			Help:      "The total number of processed schedule feeds",
		}),
		RowsImported: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_imported_total",
			Help:      "The total number of flight rows imported into snapshots",
		}),
		AlertsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_sent_total",
			Help:      "The total number of alert payloads sent to the notifier",
		}),
		ImportTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_import_time_seconds",
			Help:      "Time taken to import feeds",
			Buckets:   prometheus.DefBuckets,
		}),
		DiffChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diff_changes_total",
			Help:      "Diff classifications by class",
		}, []string{"class"}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
