package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a per-route live lookup.
const (
	outcomeLive     = "live"
	outcomeFallback = "fallback"
)

var (
	liveFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityflow_simulator_live_fetches_total",
		Help: "Per-route live flow lookups by outcome.",
	}, []string{"outcome"})
	flowCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cityflow_simulator_flow_cache_hits_total",
		Help: "Live flow lookups answered from the Redis cache.",
	})
	routeUpdatesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityflow_simulator_route_updates_published_total",
		Help: "Route updates delivered, by sink.",
	}, []string{"sink"})
	historyQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityflow_simulator_history_queries_total",
		Help: "Historical volume queries by result.",
	}, []string{"result"})
)
