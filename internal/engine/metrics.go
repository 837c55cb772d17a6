package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	getTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodestat_get_total",
			Help: "Total number of Get calls by outcome",
		},
		[]string{"status"}, // success, error or not_found
	)

	pluginDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nodestat_plugin_duration_seconds",
			Help:    "Time taken by a single plugin collection",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"plugin"},
	)

	pluginErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodestat_plugin_errors_total",
			Help: "Total number of failed plugin collections",
		},
		[]string{"plugin"},
	)
)
