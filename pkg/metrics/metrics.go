// Package metrics holds the Prometheus collectors shared by the bot
// components. They register with the default registry and are served by
// the ops server when enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mediabot_cache_hits_total",
		Help: "Cache lookups that found a live entry, by backend.",
	}, []string{"mode"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mediabot_cache_misses_total",
		Help: "Cache lookups that found nothing or an expired entry, by backend.",
	}, []string{"mode"})

	CacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mediabot_cache_evictions_total",
		Help: "Entries evicted from the in-process cache on overflow.",
	})

	SearchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mediabot_search_queries_total",
		Help: "Search queries by backend and outcome.",
	}, []string{"engine", "outcome"})

	SearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mediabot_search_duration_seconds",
		Help:    "Backend search latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"engine"})

	IndexedDocuments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mediabot_indexed_documents_total",
		Help: "Documents written to the search backend, by outcome.",
	}, []string{"engine", "outcome"})

	Commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mediabot_commands_total",
		Help: "Bot commands and callbacks handled, by name.",
	}, []string{"command"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mediabot_rate_limited_total",
		Help: "Updates dropped by the per-user rate limiter.",
	})

	PosterFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mediabot_poster_fetches_total",
		Help: "Poster lookups by source (cache, api, fallback, error).",
	}, []string{"source"})
)
