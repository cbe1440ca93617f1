// Package workload drives widgets from background goroutines, the way real
// background work reports progress to a UI it does not own.
package workload

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jask/uimutate/internal/dispatch"
	"github.com/jask/uimutate/internal/mutate"
	"github.com/jask/uimutate/internal/widget"
)

// Step returns the mutation for global step i. Steps walk the widgets in
// order; each one sets visibility and then enabled state as a composite.
// With no widgets the step is an empty composite.
func Step(widgets []*widget.Widget, i int) mutate.Modification {
	if len(widgets) == 0 {
		return mutate.NewComposite()
	}
	w := widgets[i%len(widgets)]
	return mutate.NewComposite(
		mutate.SetVisible(w, i%2 == 0),
		mutate.SetEnabled(w, i%3 != 0),
	)
}

// Runner applies steps from Workers goroutines, one step per Interval each.
// Worker k takes steps k, k+Workers, k+2*Workers and so on.
type Runner struct {
	Widgets  []*widget.Widget
	Workers  int
	Interval time.Duration
	// Steps caps the total number of steps; zero runs until ctx is done.
	Steps  int
	Logger *log.Logger
	// OnStep, if set, is called from the worker goroutine after each step.
	OnStep func(step int, err error)
}

// Run blocks until every worker has finished. Workers stop quietly when ctx
// is done or the widgets' owner has closed; any other error stops that worker
// and is returned.
func (r Runner) Run(ctx context.Context) error {
	if len(r.Widgets) == 0 || r.Workers <= 0 {
		return nil
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for k := 0; k < r.Workers; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			if err := r.work(ctx, k); err != nil {
				logger.Printf("workload: worker %d: %v", k, err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(k)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (r Runner) work(ctx context.Context, k int) error {
	var tick <-chan time.Time
	if r.Interval > 0 {
		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for i := k; r.Steps == 0 || i < r.Steps; i += r.Workers {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		err := Step(r.Widgets, i).Apply(ctx)
		if r.OnStep != nil {
			r.OnStep(i, err)
		}
		if errors.Is(err, dispatch.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}
