// Package metrics provides Prometheus metrics for the estimator
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog metrics
	CatalogRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "estimator_catalog_rows",
			Help: "Rows loaded per lookup table",
		},
		[]string{"table"},
	)

	CatalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "estimator_catalog_load_duration_seconds",
			Help:    "Time taken to load the static lookup tables",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source", "status"},
	)

	// Calculation metrics
	CostLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimator_cost_lookups_total",
			Help: "Ratio lookups by sector and result",
		},
		[]string{"sector", "result"},
	)

	DamageToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimator_damage_toggles_total",
			Help: "Damage grid checkbox transitions",
		},
		[]string{"action", "result"},
	)

	// Session metrics
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "estimator_sessions_active",
			Help: "Estimate sessions currently held in memory",
		},
	)
)
