// Package metrics holds the prometheus collectors shared by the collector,
// the sinks and the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "idea_feed"

var (
	PostsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_fetched_total",
			Help:      "Raw posts fetched per platform",
		},
		[]string{"platform"},
	)

	IdeasClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ideas_classified_total",
			Help:      "Posts classified as ideas per platform and category",
		},
		[]string{"platform", "category"},
	)

	DuplicatesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_dropped_total",
			Help:      "Ideas dropped by exact-title dedupe",
		},
	)

	SourceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_runs_total",
			Help:      "Source collection runs by outcome",
		},
		[]string{"platform", "status"}, // "success", "error"
	)

	SourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_duration_seconds",
			Help:      "Duration of one source collection in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2m
		},
		[]string{"platform"},
	)

	SinkWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_writes_total",
			Help:      "Ideas written to a sink by outcome",
		},
		[]string{"sink", "status"}, // "inserted", "updated", "published", "error"
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
