package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report service.
type Metrics struct {
	ReportBuilds  prometheus.Counter
	BuildDuration prometheus.Histogram
	ReportReady   prometheus.Gauge

	// Dataset ingestion metrics.
	DatasetRows        *prometheus.CounterVec // labels: dataset={regional,national}
	DatasetRowsDropped *prometheus.CounterVec // labels: dataset={regional,national}, section

	// Rendering metrics.
	RenderCache *prometheus.CounterVec // labels: result={hit,miss}

	// Bundle publishing metrics.
	BundlesPublished prometheus.Counter
	PublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReportBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_report",
			Name:      "builds_total",
			Help:      "Total report bundle builds.",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wildfire_report",
			Name:      "build_duration_seconds",
			Help:      "Duration of a complete aggregate-and-assemble build.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		ReportReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildfire_report",
			Name:      "ready",
			Help:      "1 after the first successful build, 0 before.",
		}),
		DatasetRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_report",
			Name:      "dataset_rows_total",
			Help:      "Rows ingested per dataset.",
		}, []string{"dataset"}),
		DatasetRowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_report",
			Name:      "dataset_rows_dropped_total",
			Help:      "Defective rows dropped per dataset and report section.",
		}, []string{"dataset", "section"}),
		RenderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_report",
			Name:      "render_cache_total",
			Help:      "Fragment render cache lookups by result.",
		}, []string{"result"}),
		BundlesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_report",
			Name:      "bundles_published_total",
			Help:      "Report bundles published to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_report",
			Name:      "publish_errors_total",
			Help:      "Failed bundle publish attempts.",
		}),
	}

	prometheus.MustRegister(
		m.ReportBuilds,
		m.BuildDuration,
		m.ReportReady,
		m.DatasetRows,
		m.DatasetRowsDropped,
		m.RenderCache,
		m.BundlesPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ReportBuilds:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wildfire_report", Name: "builds_total"}),
		BuildDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "wildfire_report", Name: "build_duration_seconds"}),
		ReportReady:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "wildfire_report", Name: "ready"}),
		DatasetRows:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wildfire_report", Name: "dataset_rows_total"}, []string{"dataset"}),
		DatasetRowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wildfire_report", Name: "dataset_rows_dropped_total"}, []string{"dataset", "section"}),
		RenderCache:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wildfire_report", Name: "render_cache_total"}, []string{"result"}),
		BundlesPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wildfire_report", Name: "bundles_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wildfire_report", Name: "publish_errors_total"}),
	}
}
