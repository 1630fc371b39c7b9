package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "market_movers_feed_ticks_total",
		Help: "Total number of feed ticks",
	})

	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "market_movers_store_mutations_total",
		Help: "Total number of widget store mutations",
	}, []string{"op"})

	PersistErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "market_movers_persist_errors_total",
		Help: "Total number of failed persistence writes",
	})

	AlertsTriggered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "market_movers_alerts_triggered_total",
		Help: "Total number of triggered alert strategies",
	})

	RequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "market_movers_http_request_latency_seconds",
		Help:    "Latency of gateway HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
