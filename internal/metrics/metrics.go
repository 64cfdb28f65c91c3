package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playembed_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playembed_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playembed_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Feed cache metrics
var (
	FeedCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playembed_feed_cache_lookups_total",
			Help: "Feed cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	FeedFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playembed_feed_fetches_total",
			Help: "Upstream feed fetches by status",
		},
		[]string{"status"}, // "ok", "error"
	)
)

// Transcript metrics
var (
	TranscriptConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playembed_transcript_conversions_total",
			Help: "Transcript conversions by detected source format",
		},
		[]string{"format"},
	)
)
