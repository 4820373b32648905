package youtube

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// refresh metrics, exposed by api on /metrics
var (
	feedRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yt_feed_refresh_total",
		Help: "Number of feed refreshes by type and status",
	}, []string{"type", "status"})

	feedVideos = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "yt_feed_videos",
		Help: "Number of videos in the last fetched feed",
	}, []string{"type", "id"})

	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "yt_feed_refresh_duration_seconds",
		Help:    "Duration of refreshing all configured feeds",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~51s
	})
)
