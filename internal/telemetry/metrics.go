package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ActionsDispatched counts store dispatches by slice and whether they were applied
	ActionsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyberdash",
			Name:      "actions_dispatched_total",
			Help:      "Total number of actions dispatched to the store",
		},
		[]string{"slice", "result"},
	)

	// FetchesTotal counts completed fetches by resource and the tier that answered
	FetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyberdash",
			Name:      "fetches_total",
			Help:      "Total number of fetches by resource and origin (primary, fallback, failed)",
		},
		[]string{"resource", "origin"},
	)

	// FallbacksTotal counts fetches that were answered by the fallback provider
	FallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyberdash",
			Name:      "fetch_fallback_total",
			Help:      "Total number of fetches served by the fallback provider after a primary failure",
		},
		[]string{"resource"},
	)

	// StaleResults counts fetch results discarded because a newer fetch had started
	StaleResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyberdash",
			Name:      "fetch_stale_total",
			Help:      "Total number of fetch results dropped as superseded",
		},
		[]string{"resource"},
	)

	// FetchDuration observes fetch latency per resource
	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cyberdash",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of fetch operations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	// ActivePollers tracks polling controllers currently holding a timer
	ActivePollers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "cyberdash",
			Name:      "active_pollers",
			Help:      "Number of active polling controllers per screen",
		},
		[]string{"screen"},
	)

	// AuthRequests counts auth provider calls
	AuthRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyberdash",
			Name:      "auth_requests_total",
			Help:      "Total number of auth provider requests by provider, operation and result",
		},
		[]string{"provider", "operation", "result"},
	)

	// WebSocketClients tracks connected screen subscribers
	WebSocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cyberdash",
			Name:      "websocket_clients",
			Help:      "Number of connected WebSocket screen subscribers",
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(ActionsDispatched)
		prometheus.DefaultRegisterer.Register(FetchesTotal)
		prometheus.DefaultRegisterer.Register(FallbacksTotal)
		prometheus.DefaultRegisterer.Register(StaleResults)
		prometheus.DefaultRegisterer.Register(FetchDuration)
		prometheus.DefaultRegisterer.Register(ActivePollers)
		prometheus.DefaultRegisterer.Register(AuthRequests)
		prometheus.DefaultRegisterer.Register(WebSocketClients)
	})
}
