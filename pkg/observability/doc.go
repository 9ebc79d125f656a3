// Package observability provides structured logging and Prometheus run metrics.
//
// # Overview
//
// The generator is a batch tool, so metrics are not scraped: they are written
// once at the end of a run in the node exporter textfile format.
//
// # Structured Logging
//
// Create logger:
//
//	logger, err := observability.NewLogger(observability.InfoLevel, observability.FormatText, os.Stderr)
//	logger.WithField("section", "api").Info("reading sources")
//
// Context-aware logging:
//
//	ctx = observability.WithLogger(ctx, logger)
//	ctx = observability.WithRunID(ctx, uuid.NewString())
//	observability.FromContext(ctx).Warn("broken documentation link")
//
// # Prometheus Metrics
//
// Initialize metrics:
//
//	metrics := observability.NewMetrics(prometheus.NewRegistry())
//	metrics.DocsParsedTotal.WithLabelValues("api").Inc()
//	metrics.ObserveStage("render", start)
//	err := metrics.WriteTextfile("uidocs.prom")
//
// # Related Packages
//
//   - pkg/config: Log and metrics configuration
//   - pkg/docs: Records run metrics
package observability
