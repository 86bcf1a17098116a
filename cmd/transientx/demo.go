package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/equality"
	"github.com/comalice/transientx/hashing"
	"github.com/comalice/transientx/internal/extensibility"
	"github.com/comalice/transientx/internal/production"
	"github.com/comalice/transientx/internal/records"
	"github.com/comalice/transientx/ordering"
)

const (
	metricsFlag = "metrics"
	traceFlag   = "trace"
)

func newDemoCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Edit a set of record chains in mutation batches and report the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			showMetrics, err := cmd.Flags().GetBool(metricsFlag)
			if err != nil {
				return err
			}
			trace, err := cmd.Flags().GetInt(traceFlag)
			if err != nil {
				return err
			}
			return e.runDemo(cmd, showMetrics, trace)
		},
	}
	cmd.Flags().Bool(metricsFlag, false, "print gathered Prometheus samples after the run")
	cmd.Flags().Int(traceFlag, 0, "print up to this many protocol events in the order they happened")
	return cmd
}

func (e *env) runDemo(cmd *cobra.Command, showMetrics bool, trace int) error {
	out := cmd.OutOrStdout()

	var events chan production.PublishedEvent
	var publisher *production.ChannelPublisher
	if trace > 0 {
		events = make(chan production.PublishedEvent, trace)
		publisher = production.NewChannelPublisher(events)
		current := transientx.SetObserver(nil)
		transientx.SetObserver(extensibility.NewFanout(current, publisher))
		defer transientx.SetObserver(current)
	}

	before, after := runWorkload(e.cfg.Demo)
	e.logger.Info("workload finished", "records", len(after), "depth", e.cfg.Demo.Depth)

	sorted := slices.Clone(after)
	ordering.Sort(sorted)
	for _, r := range sorted {
		fmt.Fprintf(out, "%s count=%d tags=[%s] hash=%08x sealed=%t\n",
			r.Name(), r.Count(), strings.Join(r.Tags(), ","), hashing.Hash(r), transientx.IsImmutable(r))
	}
	for i, r := range before {
		if equality.Equal(r, after[i]) && e.cfg.Demo.NestedModify > 0 {
			return fmt.Errorf("%s: edited record equals its original", r.Name())
		}
		if r.Count() != 0 {
			return fmt.Errorf("%s: original record was modified in place", r.Name())
		}
	}

	counts := e.counts.Snapshot()
	fmt.Fprintf(out, "events:")
	for _, k := range []transientx.EventKind{
		transientx.EventClone, transientx.EventScopeEnter, transientx.EventScopeExit,
		transientx.EventSeal, transientx.EventViolation,
	} {
		fmt.Fprintf(out, " %s=%d", k, counts[k.String()])
	}
	fmt.Fprintln(out)

	if publisher != nil {
		_ = publisher.Close()
		for pe := range events {
			fmt.Fprintf(out, "trace: %s op=%s scope=%d\n", pe.Event.Kind, pe.Event.Op, pe.Event.Scope)
		}
		fmt.Fprintf(out, "trace: %d dropped\n", publisher.Dropped())
	}

	if showMetrics {
		return e.printMetrics(out)
	}
	return nil
}

// deepest returns the last record of r's child chain.
func deepest(r *records.Record) *records.Record {
	for r.Child() != nil {
		r = r.Child()
	}
	return r
}
