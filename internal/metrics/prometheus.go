package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the ingestion service

var (
	// Feed metrics
	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fivb_feed_requests_total",
			Help: "Total number of VIS feed requests",
		},
		[]string{"sport", "status"},
	)

	FeedRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fivb_feed_request_duration_seconds",
			Help:    "Duration of VIS feed requests in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"sport"},
	)

	// Sync metrics
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fivb_sync_runs_total",
			Help: "Total number of sync runs",
		},
		[]string{"sport", "status"},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fivb_sync_duration_seconds",
			Help:    "Duration of sync runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"sport"},
	)

	TournamentsSaved = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fivb_tournaments_saved",
			Help: "Number of tournaments written by the last successful run",
		},
		[]string{"sport"},
	)

	LastSuccessfulSync = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fivb_last_successful_sync_timestamp",
			Help: "Timestamp of last successful sync run",
		},
		[]string{"sport"},
	)

	// Database metrics
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fivb_db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fivb_db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fivb_cache_hits_total",
			Help: "Total number of events cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fivb_cache_misses_total",
			Help: "Total number of events cache misses",
		},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fivb_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)
)

// RecordFeedRequest records a feed request
func RecordFeedRequest(sport, status string, duration float64) {
	FeedRequestsTotal.WithLabelValues(sport, status).Inc()
	FeedRequestDuration.WithLabelValues(sport).Observe(duration)
}

// RecordSync records a sync run. saved is only reported for successful runs.
func RecordSync(sport, status string, saved int, duration float64) {
	SyncRunsTotal.WithLabelValues(sport, status).Inc()
	SyncDuration.WithLabelValues(sport).Observe(duration)

	if status == "success" {
		TournamentsSaved.WithLabelValues(sport).Set(float64(saved))
		LastSuccessfulSync.WithLabelValues(sport).SetToCurrentTime()
	}
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// UpdateDBConnectionStats updates database connection pool statistics
func UpdateDBConnectionStats(active, idle int32) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
