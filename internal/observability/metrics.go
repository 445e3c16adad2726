package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	ObservationsFetched   prometheus.Counter
	ObservationsPublished prometheus.Counter
	FetchErrors           prometheus.Counter
	FormatErrors          prometheus.Counter
	PipelineRunning       prometheus.Gauge

	// Poll cycle metrics.
	BatchSize     prometheus.Histogram
	CycleDuration prometheus.Histogram

	// Tile enrichment metrics.
	TileLookups           *prometheus.CounterVec // labels: outcome={success,error,empty}
	TileEnrichmentEnabled prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ObservationsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metar_etl",
			Name:      "observations_fetched_total",
			Help:      "Total observation rows fetched from the ground data service.",
		}),
		ObservationsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metar_etl",
			Name:      "observations_published_total",
			Help:      "Total observations written to the sink topic.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metar_etl",
			Name:      "fetch_errors_total",
			Help:      "Total failed ground data queries.",
		}),
		FormatErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metar_etl",
			Name:      "format_errors_total",
			Help:      "Total response tables rejected by the property formatter.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "metar_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metar_etl",
			Name:      "batch_size",
			Help:      "Number of observation rows per poll cycle.",
			Buckets:   []float64{1, 5, 10, 20, 50, 100, 250, 500, 1000},
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metar_etl",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete fetch-format-publish cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		TileLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metar_etl",
			Name:      "tile_lookups_total",
			Help:      "Satellite tile geometry lookups by outcome.",
		}, []string{"outcome"}),
		TileEnrichmentEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "metar_etl",
			Name:      "tile_enrichment_enabled",
			Help:      "1 when satellite tile enrichment is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.ObservationsFetched,
		m.ObservationsPublished,
		m.FetchErrors,
		m.FormatErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.CycleDuration,
		m.TileLookups,
		m.TileEnrichmentEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ObservationsFetched:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "metar_etl", Name: "observations_fetched_total"}),
		ObservationsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "metar_etl", Name: "observations_published_total"}),
		FetchErrors:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "metar_etl", Name: "fetch_errors_total"}),
		FormatErrors:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "metar_etl", Name: "format_errors_total"}),
		PipelineRunning:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "metar_etl", Name: "pipeline_running"}),
		BatchSize:             prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "metar_etl", Name: "batch_size"}),
		CycleDuration:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "metar_etl", Name: "cycle_duration_seconds"}),
		TileLookups:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "metar_etl", Name: "tile_lookups_total"}, []string{"outcome"}),
		TileEnrichmentEnabled: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "metar_etl", Name: "tile_enrichment_enabled"}),
	}
}
