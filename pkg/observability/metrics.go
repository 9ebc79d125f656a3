package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics of a generator run
type Metrics struct {
	registry *prometheus.Registry

	// Pipeline metrics
	DocsParsedTotal    *prometheus.CounterVec
	PagesRenderedTotal *prometheus.CounterVec
	LinkWarningsTotal  *prometheus.CounterVec
	StageDuration      *prometheus.HistogramVec

	// Source cache metrics
	SourceCacheHitsTotal   prometheus.Counter
	SourceCacheMissesTotal prometheus.Counter

	// Output metrics
	OutputBytes prometheus.Gauge
	OutputFiles prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,

		DocsParsedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uidocs_docs_parsed_total",
				Help: "Total number of documentation blocks parsed",
			},
			[]string{"section"},
		),
		PagesRenderedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uidocs_pages_rendered_total",
				Help: "Total number of pages rendered",
			},
			[]string{"section", "kind"},
		),
		LinkWarningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uidocs_link_warnings_total",
				Help: "Total number of broken documentation links",
			},
			[]string{"reason"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uidocs_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),

		SourceCacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "uidocs_source_cache_hits_total",
				Help: "Total number of included source reads served from cache",
			},
		),
		SourceCacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "uidocs_source_cache_misses_total",
				Help: "Total number of included source reads that hit the disk",
			},
		),

		OutputBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "uidocs_output_bytes",
				Help: "Bytes written to the output directory",
			},
		),
		OutputFiles: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "uidocs_output_files",
				Help: "Files written to the output directory",
			},
		),
	}

	// Register all metrics
	registry.MustRegister(
		m.DocsParsedTotal,
		m.PagesRenderedTotal,
		m.LinkWarningsTotal,
		m.StageDuration,
		m.SourceCacheHitsTotal,
		m.SourceCacheMissesTotal,
		m.OutputBytes,
		m.OutputFiles,
	)

	return m
}

// ObserveStage records how long a pipeline stage took since start
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// WriteTextfile writes the registry in the node exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
