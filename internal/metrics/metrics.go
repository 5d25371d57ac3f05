// README: Prometheus collectors for plan generation, collaborators and the HTTP edge.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_plans_total",
			Help: "Travel plan requests by outcome",
		},
		[]string{"outcome"},
	)

	PlanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfarer_plan_duration_seconds",
			Help:    "End-to-end plan generation time in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	CollaboratorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_collaborator_calls_total",
			Help: "Collaborator attempts by collaborator and outcome",
		},
		[]string{"collaborator", "outcome"},
	)

	CollaboratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "wayfarer_collaborator_duration_seconds",
			Help: "Duration of a single collaborator attempt in seconds",
		},
		[]string{"collaborator"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wayfarer_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)
)
