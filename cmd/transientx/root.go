package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/internal/config"
	"github.com/comalice/transientx/internal/extensibility"
	"github.com/comalice/transientx/internal/production"
)

const configFlag = "config"

// env is the state shared by every subcommand for one invocation.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	counts   *extensibility.CountingObserver
	registry *prometheus.Registry
	previous transientx.Observer
}

// New returns the root command.
func New() *cobra.Command {
	e := &env{}
	cmd := &cobra.Command{
		Use:   "transientx [sub-command]",
		Short: "Drive batched mutation of persistent records",
		Long: `transientx builds persistent records, edits them in mutation batches and
  reports what the ownership protocol did: clones, nested scopes and seals.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString(configFlag)
			if err != nil {
				return err
			}
			return e.setup(cmd.ErrOrStderr(), path)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.teardown()
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().String(configFlag, "", "path to a YAML configuration file")
	cmd.AddCommand(newDemoCommand(e))
	cmd.AddCommand(newSnapshotCommand(e))
	cmd.AddCommand(newDotCommand(e))
	return cmd
}

func (e *env) setup(logOut io.Writer, path string) error {
	e.cfg = config.Default()
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		e.cfg = cfg
	}

	level, err := e.cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch e.cfg.Log.Format {
	case "json":
		handler = slog.NewJSONHandler(logOut, opts)
	default:
		handler = slog.NewTextHandler(logOut, opts)
	}
	e.logger = slog.New(handler)

	e.counts = extensibility.NewCountingObserver()
	var logged transientx.Observer = production.NewSlogObserver(e.logger)
	if level > slog.LevelDebug {
		// Clones and scope changes are only logged at debug level.
		logged = extensibility.NewFilterObserver(logged, transientx.EventSeal, transientx.EventViolation)
	}
	observers := []transientx.Observer{e.counts, logged}
	if e.cfg.Metrics.Enabled {
		e.registry = prometheus.NewRegistry()
		observers = append(observers, production.NewPrometheusObserver(e.registry, e.cfg.Metrics.Namespace))
	}
	e.previous = transientx.SetObserver(extensibility.NewFanout(observers...))
	e.logger.Debug("configuration loaded", "config", path, "metrics", e.cfg.Metrics.Enabled)
	return nil
}

func (e *env) teardown() {
	transientx.SetObserver(e.previous)
}

// printMetrics writes every gathered sample as "name{labels} value".
func (e *env) printMetrics(w io.Writer) error {
	if e.registry == nil {
		return nil
	}
	families, err := e.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for i, lp := range m.GetLabel() {
				if i > 0 {
					labels += ","
				}
				labels += fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
			}
			value := m.GetCounter().GetValue()
			if h := m.GetHistogram(); h != nil {
				value = float64(h.GetSampleCount())
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), labels, value)
		}
	}
	return nil
}
