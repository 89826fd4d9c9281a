package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Domain Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Listing and advanced searches by collection and kind",
		},
		[]string{"collection", "kind"}, // kind: list, advanced, export
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_result_size",
			Help:      "Number of documents matched per search",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
		},
		[]string{"collection", "kind"},
	)

	ImportRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Rows processed by bulk imports",
		},
		[]string{"collection", "outcome"}, // outcome: inserted, failed
	)

	SubmissionReviewsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submission_reviews_total",
			Help:      "Submission review decisions",
		},
		[]string{"decision"}, // approved, rejected
	)

	BackupRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backup_runs_total",
			Help:      "Snapshot uploads by status",
		},
		[]string{"status"}, // ok, error
	)

	BackupBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backup_last_size_bytes",
			Help:      "Compressed size of the last uploaded snapshot",
		},
	)
)

var registerOnce sync.Once

// RegisterDomainMetrics registers the domain metrics. Safe to call more than once.
func RegisterDomainMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			SearchesTotal,
			SearchResults,
			ImportRowsTotal,
			SubmissionReviewsTotal,
			BackupRunsTotal,
			BackupBytes,
		)
	})
}

// ObserveSearch counts a search and records how many documents it matched.
func ObserveSearch(collection, kind string, matched int) {
	SearchesTotal.WithLabelValues(collection, kind).Inc()
	SearchResults.WithLabelValues(collection, kind).Observe(float64(matched))
}

// ObserveImport records the outcome of a bulk import.
func ObserveImport(collection string, inserted, failed int) {
	ImportRowsTotal.WithLabelValues(collection, "inserted").Add(float64(inserted))
	ImportRowsTotal.WithLabelValues(collection, "failed").Add(float64(failed))
}
