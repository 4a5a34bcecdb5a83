// Package metrics exposes search activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/ports"
)

// Recorder implements ports.SearchRecorder.
type Recorder struct {
	searchesTotal    *prometheus.CounterVec
	searchSeconds    *prometheus.HistogramVec
	queryEnergies    prometheus.Histogram
	tableTransitions *prometheus.GaugeVec
	tableDecays      *prometheus.GaugeVec
}

// NewRecorder registers the search metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		// Labels: radiation (gamma, alpha), outcome (matched, no_results, invalid_query)
		searchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decaysearch",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Total searches by radiation type and outcome",
		}, []string{"radiation", "outcome"}),

		searchSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "decaysearch",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Time spent parsing, matching and formatting one search",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"radiation"}),

		queryEnergies: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "decaysearch",
			Subsystem: "search",
			Name:      "query_energies",
			Help:      "Number of energies per parsed query",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		}),

		tableTransitions: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "decaysearch",
			Subsystem: "table",
			Name:      "transitions",
			Help:      "Transitions in the loaded reference table",
		}, []string{"radiation"}),

		tableDecays: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "decaysearch",
			Subsystem: "table",
			Name:      "decays",
			Help:      "Distinct decays in the loaded reference table",
		}, []string{"radiation"}),
	}
}

// ObserveSearch records one completed search.
func (r *Recorder) ObserveSearch(radiation entities.RadiationType, outcome ports.SearchOutcome, energies int, elapsed time.Duration) {
	r.searchesTotal.WithLabelValues(radiation.String(), string(outcome)).Inc()
	r.searchSeconds.WithLabelValues(radiation.String()).Observe(elapsed.Seconds())
	if outcome != ports.OutcomeInvalidQuery {
		r.queryEnergies.Observe(float64(energies))
	}
}

// ObserveTable publishes the size of the loaded table.
func (r *Recorder) ObserveTable(table ports.TransitionTable) {
	for _, radiation := range []entities.RadiationType{entities.Gamma, entities.Alpha} {
		n := 0
		table.Each(radiation, func(entities.Transition) { n++ })
		r.tableTransitions.WithLabelValues(radiation.String()).Set(float64(n))
		r.tableDecays.WithLabelValues(radiation.String()).Set(float64(table.DecayCount(radiation)))
	}
}
