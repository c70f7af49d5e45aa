// Package metrics exports Prometheus metrics for the recommendation and
// ingestion paths.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Engine metrics
	RecommendRequests *prometheus.CounterVec
	DuplicateChecks   *prometheus.CounterVec
	RecommendDuration prometheus.Histogram
	BatchSize         prometheus.Histogram

	// Ingestion metrics
	TitlesImported prometheus.Counter
	PostsImported  prometheus.Counter
	StatsUpserted  prometheus.Counter

	// Worker metrics
	RollupRuns     *prometheus.CounterVec
	RollupDuration prometheus.Histogram
}

// New registers and returns the service metrics.
func New() *Metrics {
	return &Metrics{
		RecommendRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blogdex_recommend_requests_total",
			Help: "Total recommendation requests by outcome (recommended, no_keywords, no_data, error)",
		}, []string{"outcome"}),

		DuplicateChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blogdex_duplicate_checks_total",
			Help: "Total duplicate checks by result (duplicate, fresh)",
		}, []string{"result"}),

		RecommendDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "blogdex_recommend_duration_seconds",
			Help:    "Time to score one title across all blogs",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}),

		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "blogdex_recommend_batch_size",
			Help:    "Number of titles per batch recommendation request",
			Buckets: []float64{1, 5, 10, 20, 50, 100, 200},
		}),

		TitlesImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blogdex_titles_imported_total",
			Help: "Total collected titles inserted via bulk or file import",
		}),

		PostsImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blogdex_posts_imported_total",
			Help: "Total published posts inserted via bulk import",
		}),

		StatsUpserted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blogdex_keyword_stats_upserted_total",
			Help: "Total search-console stat rows written",
		}),

		RollupRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blogdex_rollup_runs_total",
			Help: "Total daily roll-up runs by outcome (success, error)",
		}, []string{"outcome"}),

		RollupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "blogdex_rollup_duration_seconds",
			Help:    "Time to roll one day of keyword stats into site stats",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRecommend records one scored title.
func (m *Metrics) RecordRecommend(outcome string, duration time.Duration) {
	m.RecommendRequests.WithLabelValues(outcome).Inc()
	m.RecommendDuration.Observe(duration.Seconds())
}

// RecordDuplicateCheck records one duplicate check result.
func (m *Metrics) RecordDuplicateCheck(isDuplicate bool) {
	result := "fresh"
	if isDuplicate {
		result = "duplicate"
	}
	m.DuplicateChecks.WithLabelValues(result).Inc()
}

// RecordRollup records one roll-up run.
func (m *Metrics) RecordRollup(err error, duration time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.RollupRuns.WithLabelValues(outcome).Inc()
	m.RollupDuration.Observe(duration.Seconds())
}
