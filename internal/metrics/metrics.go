package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collaborator labels
const (
	CollaboratorCatalog   = "catalog"
	CollaboratorResponder = "responder"
	CollaboratorMemory    = "memory"
	CollaboratorAskLog    = "ask_log"
)

var (
	AskTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placefinder_ask_total",
			Help: "Total number of answered asks by route",
		},
		[]string{"route"},
	)

	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placefinder_collaborator_failures_total",
			Help: "Total number of failed calls to external collaborators",
		},
		[]string{"collaborator"},
	)

	AskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "placefinder_ask_duration_seconds",
			Help:    "Duration of ask handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)
