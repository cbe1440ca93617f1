package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jask/uimutate/internal/dispatch"
	"github.com/jask/uimutate/internal/mutate"
)

var (
	setVisible bool
	setEnabled bool
)

var setCmd = &cobra.Command{
	Use:   "set <widget>",
	Short: "Change one widget from a worker goroutine and print its resulting state",
	Long: `set starts a headless loop holding the configured widgets, looks up the named
widget and applies the visible/enabled preset to it from a separate goroutine,
so the change is marshaled onto the loop.`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

func init() {
	setCmd.Flags().BoolVar(&setVisible, "visible", true, "make the widget visible")
	setCmd.Flags().BoolVar(&setEnabled, "enabled", true, "make the widget enabled")
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	loop := dispatch.New(dispatch.WithQueueDepth(cfg.Loop.QueueDepth))
	reg, err := buildRegistry(loop, cfg.UI.Widgets)
	if err != nil {
		return err
	}
	w, err := reg.Lookup(args[0])
	if err != nil {
		return err
	}

	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	applied := make(chan error, 1)
	go func() {
		applied <- mutate.SetVisibleAndEnabled(w, setVisible, setEnabled).Apply(ctx)
	}()
	if err := <-applied; err != nil {
		loop.Close()
		<-loopDone
		return fmt.Errorf("set %s: %w", w.Name(), err)
	}

	s, err := w.Snapshot(ctx)
	loop.Close()
	if lerr := <-loopDone; lerr != nil {
		return fmt.Errorf("loop: %w", lerr)
	}
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", w.Name(), err)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Name", "Label", "Visible", "Enabled")
	if err := table.Append(s.Name, s.Label, strconv.FormatBool(s.Visible), strconv.FormatBool(s.Enabled)); err != nil {
		return err
	}
	return table.Render()
}
