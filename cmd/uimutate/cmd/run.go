package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jask/uimutate/internal/dispatch"
	"github.com/jask/uimutate/internal/tui"
	"github.com/jask/uimutate/internal/workload"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the widget board with background workers mutating it",
	Long: `run opens the board and starts loop.workers goroutines, each applying a step
every loop.interval. Workers stop after loop.steps steps in total; 0 keeps them
going until the board quits.`,
	RunE: runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	// the board owns the terminal; send logs to a file or nowhere
	if os.Getenv("DEBUG") != "" {
		f, err := tea.LogToFile("debug.log", "uimutate")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	promReg := prometheus.NewRegistry()
	d := tui.NewDispatcher(dispatch.NewMetrics(promReg))
	reg, err := buildRegistry(d, cfg.UI.Widgets)
	if err != nil {
		return err
	}
	serveMetrics(ctx, cfg.Metrics.Addr, promReg)

	board := tui.New(ctx, cfg.UI.Title, d, reg.All())
	p := tea.NewProgram(board, tea.WithAltScreen())
	d.Attach(p.Send)

	runner := workload.Runner{
		Widgets:  reg.All(),
		Workers:  cfg.Loop.Workers,
		Interval: cfg.Loop.Interval,
		Steps:    cfg.Loop.Steps,
		OnStep: func(step int, err error) {
			if err != nil {
				p.Send(tui.StatusMsg{Text: err.Error(), IsErr: true})
				return
			}
			p.Send(tui.StatusMsg{Text: fmt.Sprintf("worker applied step %d", step)})
		},
	}
	workDone := make(chan error, 1)
	go func() { workDone <- runner.Run(ctx) }()

	_, runErr := p.Run()
	d.Detach()
	cancel()
	if err := <-workDone; err != nil {
		log.Printf("workload: %v", err)
	}
	if runErr != nil {
		return fmt.Errorf("run board: %w", runErr)
	}
	return nil
}
