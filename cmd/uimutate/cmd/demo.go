package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jask/uimutate/internal/dispatch"
	"github.com/jask/uimutate/internal/mutate"
	"github.com/jask/uimutate/internal/widget"
	"github.com/jask/uimutate/internal/workload"
)

var demoInterval time.Duration

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the workload against a headless loop and print the final widget states",
	Long: `demo runs loop.steps workload steps from loop.workers goroutines against a
headless loop, pausing loop.interval (or --interval) between the steps of each
worker, then shows every widget and prints the final states.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().DurationVar(&demoInterval, "interval", 0, "delay between steps of each worker (default loop.interval)")
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	promReg := prometheus.NewRegistry()
	metrics := dispatch.NewMetrics(promReg)
	loop := dispatch.New(dispatch.WithQueueDepth(cfg.Loop.QueueDepth), dispatch.WithMetrics(metrics))
	reg, err := buildRegistry(loop, cfg.UI.Widgets)
	if err != nil {
		return err
	}
	serveMetrics(ctx, cfg.Metrics.Addr, promReg)

	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	interval := cfg.Loop.Interval
	if cmd.Flags().Changed("interval") {
		interval = demoInterval
	}
	runner := workload.Runner{
		Widgets:  reg.All(),
		Workers:  cfg.Loop.Workers,
		Interval: interval,
		Steps:    cfg.Loop.Steps,
	}
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("workload: %w", err)
	}

	// finish with every widget shown, applied as one composite from here
	finish := make([]mutate.Modification, 0, reg.Len())
	for _, w := range reg.All() {
		finish = append(finish, mutate.SetVisible(w, true))
	}
	if err := mutate.NewComposite(finish...).Apply(ctx); err != nil {
		return fmt.Errorf("finish: %w", err)
	}

	states := make([]widget.State, 0, reg.Len())
	for _, w := range reg.All() {
		s, err := w.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("snapshot %s: %w", w.Name(), err)
		}
		states = append(states, s)
	}

	loop.Close()
	if err := <-loopDone; err != nil {
		return fmt.Errorf("loop: %w", err)
	}

	out := cmd.OutOrStdout()
	table := tablewriter.NewWriter(out)
	table.Header("Name", "Label", "Visible", "Enabled", "ID")
	for _, s := range states {
		if err := table.Append(s.Name, s.Label, strconv.FormatBool(s.Visible), strconv.FormatBool(s.Enabled), s.ID.String()); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	counts := metrics.Counts()
	fmt.Fprintf(out, "\n%d steps: %.0f marshaled, %.0f inline, %.0f failed\n",
		cfg.Loop.Steps, counts.Marshaled, counts.Inline, counts.Failed)
	return nil
}
