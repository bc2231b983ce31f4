package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	BackendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "backend_requests_total",
			Help:      "Backend calls issued by the API client, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	QuerySkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "querysync_skipped_total",
			Help:      "Fetches skipped or results dropped by the query-sync layer.",
		},
		[]string{"reason"},
	)

	SessionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "session_events_total",
			Help:      "Session lifecycle transitions.",
		},
		[]string{"event"},
	)
)

// Registry holds the dashboard collectors. Go/process collectors are added so
// /metrics is useful on its own.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		BackendRequests,
		QuerySkipped,
		SessionEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}
