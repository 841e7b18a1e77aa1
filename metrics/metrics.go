// Package metrics exposes Prometheus counters for the pricing core. All
// collectors live on a dedicated registry so tests and embedding programs
// never fight over the global one.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dealer-pricing/models"
)

var (
	registry = prometheus.NewRegistry()
	factory  = promauto.With(registry)

	normalizeOutcomes = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dealer",
		Name:      "normalize_listings_total",
		Help:      "Raw listings handled by normalization runs, by outcome",
	}, []string{"outcome"})

	normalizeDuration = factory.NewSummary(prometheus.SummaryOpts{
		Namespace: "dealer",
		Name:      "normalize_run_seconds",
		Help:      "Wall time of normalization runs",
	})

	// PricingRequests counts single-vehicle price suggestions.
	PricingRequests = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "dealer",
		Name:      "pricing_requests_total",
		Help:      "Price suggestion computations",
	})

	// SimulationRequests counts single-point sale-time simulations.
	SimulationRequests = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "dealer",
		Name:      "simulation_requests_total",
		Help:      "Sale-time simulation computations",
	})
)

// RecordNormalizeRun folds one run's counters into the collectors.
func RecordNormalizeRun(stats *models.NormalizeStats, elapsed time.Duration) {
	normalizeOutcomes.WithLabelValues("normalized").Add(float64(stats.Normalized))
	normalizeOutcomes.WithLabelValues("unmatched").Add(float64(stats.Unmatched))
	normalizeOutcomes.WithLabelValues("outlier").Add(float64(stats.OutliersFiltered))
	normalizeDuration.Observe(elapsed.Seconds())
}

// Handler serves the registry in Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
