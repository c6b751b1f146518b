package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "room_inventory"

var (
	ItemMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "item_mutations_total",
		Help:      "Item mutations by action and outcome.",
	}, []string{"action", "outcome"})

	CacheInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "query_cache_invalidations_total",
		Help:      "Query cache keys invalidated, by query name.",
	}, []string{"query"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_clients",
		Help:      "Connected WebSocket clients.",
	})
)

func ObserveMutation(action string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	ItemMutations.WithLabelValues(action, outcome).Inc()
}
