package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type repricerMetrics struct {
	sweeps        prometheus.Counter
	listingsSeen  prometheus.Counter
	boostsApplied prometheus.Counter
	boostErrors   prometheus.Counter
	lastSweepUnix prometheus.Gauge
}

//nolint:exhaustruct
func newRepricerMetrics(registerer prometheus.Registerer) *repricerMetrics {
	factory := promauto.With(registerer)

	return &repricerMetrics{
		sweeps: factory.NewCounter(prometheus.CounterOpts{
			Name: "ebay_pricer_sweeps_total",
			Help: "Completed repricing sweeps",
		}),
		listingsSeen: factory.NewCounter(prometheus.CounterOpts{
			Name: "ebay_pricer_sweep_listings_total",
			Help: "Listings examined across all sweeps",
		}),
		boostsApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "ebay_pricer_boosts_applied_total",
			Help: "Price boosts pushed to the marketplace",
		}),
		boostErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "ebay_pricer_boost_errors_total",
			Help: "Failed price revisions",
		}),
		lastSweepUnix: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ebay_pricer_last_sweep_timestamp_seconds",
			Help: "Unix timestamp of the last completed sweep",
		}),
	}
}
