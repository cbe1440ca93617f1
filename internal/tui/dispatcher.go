package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/uimutate/internal/dispatch"
)

// invokeMsg carries work from another goroutine into Board.Update.
type invokeMsg struct {
	task *dispatch.Task
}

// Dispatcher makes the bubbletea event loop the owner of the board's
// widgets. Work from other goroutines is sent to the program as a message
// and runs inside Update.
type Dispatcher struct {
	mu       sync.Mutex
	send     func(tea.Msg)
	stopped  chan struct{}
	stopOnce sync.Once
	metrics  *dispatch.Metrics
}

// NewDispatcher creates a detached dispatcher. m may be nil.
func NewDispatcher(m *dispatch.Metrics) *Dispatcher {
	return &Dispatcher{stopped: make(chan struct{}), metrics: m}
}

// Attach sets the function used to reach the program, normally
// (*tea.Program).Send.
func (d *Dispatcher) Attach(send func(tea.Msg)) {
	d.mu.Lock()
	d.send = send
	d.mu.Unlock()
}

// Detach marks the program as gone. Pending and later invocations fail with
// dispatch.ErrClosed.
func (d *Dispatcher) Detach() {
	d.stopOnce.Do(func() { close(d.stopped) })
}

func (d *Dispatcher) OnLoop(ctx context.Context) bool {
	return dispatch.HasAffinity(ctx, d)
}

func (d *Dispatcher) Invoke(ctx context.Context, fn func(context.Context) error) error {
	if d.OnLoop(ctx) {
		d.metrics.RecordInline()
		return fn(ctx)
	}
	select {
	case <-d.stopped:
		d.metrics.RecordFailed()
		return dispatch.ErrClosed
	default:
	}

	d.mu.Lock()
	send := d.send
	d.mu.Unlock()
	if send == nil {
		return ErrNotAttached
	}

	task := dispatch.NewTask(fn)
	send(invokeMsg{task: task})
	if task.Settle(d.stopped) {
		d.metrics.RecordMarshaled()
	} else {
		d.metrics.RecordFailed()
	}
	return task.Wait()
}

// run executes a task handed over by Invoke.
func (d *Dispatcher) run(ctx context.Context, msg invokeMsg) {
	d.metrics.ObserveWait(msg.task)
	msg.task.Execute(dispatch.WithAffinity(ctx, d))
}
