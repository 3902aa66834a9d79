package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetricCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inbox_cache_lookups_total",
			Help: "Resource cache lookups, by cache and result (hit or miss)",
		},
		[]string{"cache", "result"},
	)

	MetricCacheFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inbox_cache_fetches_total",
			Help: "Fetches issued by the resource cache, by cache and outcome",
		},
		[]string{"cache", "outcome"},
	)

	MetricCollaboratorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inbox_collaborator_requests_total",
			Help: "Requests sent to the collaborator service, by operation and status code",
		},
		[]string{"operation", "status"},
	)

	MetricCollaboratorLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inbox_collaborator_request_duration_seconds",
			Help:    "Latency of requests sent to the collaborator service",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
