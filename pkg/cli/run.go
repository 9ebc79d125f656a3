package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/uidocs/pkg/config"
	"github.com/platinummonkey/uidocs/pkg/observability"
)

// runEnv is what every command needs before running the pipeline
type runEnv struct {
	cfg     *config.Config
	log     *logrus.Logger
	metrics *observability.Metrics
}

func loadRunEnv(cmd *cobra.Command) (*runEnv, error) {
	path, _ := cmd.Flags().GetString("config")
	levelFlag, _ := cmd.Flags().GetString("log-level")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadConfig(path)
	} else {
		cfg, err = config.LoadConfigFromDir(".")
	}
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel()
	if levelFlag != "" {
		level = observability.ParseLogLevel(levelFlag)
	}
	log, err := observability.NewLogger(level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	env := &runEnv{cfg: cfg, log: log}
	if cfg.MetricsFile != "" {
		env.metrics = observability.NewMetrics(prometheus.NewRegistry())
	}
	return env, nil
}

// flushMetrics writes the metrics textfile when one is configured
func (e *runEnv) flushMetrics() error {
	if e.metrics == nil {
		return nil
	}
	if err := e.metrics.WriteTextfile(e.cfg.MetricsFile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	e.log.WithField("file", e.cfg.MetricsFile).Debug("Wrote run metrics")
	return nil
}
