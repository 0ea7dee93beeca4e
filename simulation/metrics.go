package simulation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cityflow_simulator_frames_total",
		Help: "Total number of simulation frames executed.",
	})
	vehiclesSpawned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cityflow_simulator_vehicles_spawned_total",
		Help: "Total number of vehicle tokens spawned.",
	})
	vehiclesRetired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cityflow_simulator_vehicles_retired_total",
		Help: "Total number of vehicle tokens that reached the end of their route.",
	})
	vehiclesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cityflow_simulator_vehicles_active",
		Help: "Number of vehicle tokens currently on the map.",
	})
	scenarioSelections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityflow_simulator_scenario_selections_total",
		Help: "Scenario selections by scenario id.",
	}, []string{"scenario"})
	routeUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityflow_simulator_route_updates_total",
		Help: "Route set replacements by reason.",
	}, []string{"reason"})
	sinkFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityflow_simulator_sink_failures_total",
		Help: "Failed route update deliveries by sink.",
	}, []string{"sink"})
	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cityflow_simulator_refresh_duration_seconds",
		Help:    "Duration of a live data refresh cycle.",
		Buckets: []float64{0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
	})
)
