package dispatch

import (
	"context"
	"sync/atomic"
	"time"
)

// Task is one unit of work handed to an owning loop, together with the
// channel its submitter waits on. A task completes exactly once, either by
// running or by being failed.
type Task struct {
	fn       func(context.Context) error
	done     chan struct{}
	claimed  atomic.Bool
	err      error
	ran      bool
	panicked bool
	panicVal any
	enqueued time.Time
}

func NewTask(fn func(context.Context) error) *Task {
	return &Task{fn: fn, done: make(chan struct{}), enqueued: time.Now()}
}

// Execute runs the task on the calling goroutine. A panic raised by the task
// is captured and re-raised by Wait. Execute is a no-op when the task has
// already completed or been failed.
func (t *Task) Execute(ctx context.Context) {
	if !t.claimed.CompareAndSwap(false, true) {
		return
	}
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			t.panicked = true
			t.panicVal = r
		}
	}()
	t.ran = true
	t.err = t.fn(ctx)
}

// Fail completes the task with err without running it. It reports false when
// the task was already claimed by Execute.
func (t *Task) Fail(err error) bool {
	if !t.claimed.CompareAndSwap(false, true) {
		return false
	}
	t.err = err
	close(t.done)
	return true
}

// Done is closed once the task has completed.
func (t *Task) Done() <-chan struct{} { return t.done }

// Enqueued is the time the task was created.
func (t *Task) Enqueued() time.Time { return t.enqueued }

// Wait blocks until the task completes and returns its error.
func (t *Task) Wait() error {
	<-t.done
	return t.result()
}

// WaitOrClosed blocks until the task completes or stopped is closed. When the
// owner stops before the task ran, the task fails with ErrClosed.
func (t *Task) WaitOrClosed(stopped <-chan struct{}) error {
	t.Settle(stopped)
	return t.result()
}

// Settle blocks like WaitOrClosed but does not surface the result. It reports
// whether the task actually ran, as opposed to being failed unrun.
func (t *Task) Settle(stopped <-chan struct{}) bool {
	select {
	case <-t.done:
	case <-stopped:
		t.Fail(ErrClosed)
		<-t.done
	}
	return t.ran
}

func (t *Task) result() error {
	if t.panicked {
		panic(t.panicVal)
	}
	return t.err
}
