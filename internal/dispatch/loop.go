package dispatch

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
)

const defaultQueueDepth = 64

// Loop is a single-consumer executor. It may be run once; after it stops,
// every queued or late submission fails with ErrClosed.
type Loop struct {
	tasks   chan *Task
	quit    chan struct{}
	stopped chan struct{}

	started   atomic.Bool
	closeOnce sync.Once
	stopOnce  sync.Once

	logger  *log.Logger
	metrics *Metrics
}

type Option func(*Loop)

// WithQueueDepth sets how many submissions may wait before submitters block
// on the queue itself.
func WithQueueDepth(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.tasks = make(chan *Task, n)
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(l *Loop) { l.metrics = m }
}

func New(opts ...Option) *Loop {
	l := &Loop{
		tasks:   make(chan *Task, defaultQueueDepth),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run drains the queue on the calling goroutine until Close is called or ctx
// is cancelled. Tasks receive a child of ctx marked with this loop.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer l.stop()

	select {
	case <-l.quit:
		return ErrClosed
	default:
	}

	loopCtx := WithAffinity(ctx, l)
	l.logger.Printf("dispatch: loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Printf("dispatch: loop cancelled: %v", ctx.Err())
			return ctx.Err()
		case <-l.quit:
			l.logger.Printf("dispatch: loop closed")
			return nil
		case task := <-l.tasks:
			l.metrics.ObserveWait(task)
			task.Execute(loopCtx)
		}
	}
}

// Invoke runs fn on the loop. When ctx already carries this loop's affinity,
// fn runs inline; otherwise the caller blocks until the loop has run fn. The
// error returned by fn, or a panic raised by it, surfaces to the caller
// unchanged.
func (l *Loop) Invoke(ctx context.Context, fn func(context.Context) error) error {
	if l.OnLoop(ctx) {
		l.metrics.RecordInline()
		return fn(ctx)
	}

	// A closed loop must not take new tasks, even when the queue has room.
	select {
	case <-l.quit:
		l.metrics.RecordFailed()
		return ErrClosed
	case <-l.stopped:
		l.metrics.RecordFailed()
		return ErrClosed
	default:
	}

	task := NewTask(fn)
	select {
	case l.tasks <- task:
	case <-l.quit:
		l.metrics.RecordFailed()
		return ErrClosed
	case <-l.stopped:
		l.metrics.RecordFailed()
		return ErrClosed
	}

	if task.Settle(l.stopped) {
		l.metrics.RecordMarshaled()
	} else {
		l.metrics.RecordFailed()
	}
	return task.Wait()
}

// OnLoop reports whether ctx belongs to a task running on this loop.
func (l *Loop) OnLoop(ctx context.Context) bool {
	return HasAffinity(ctx, l)
}

// Close asks the loop to stop after the task it is running, if any.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.quit) })
	if !l.started.Load() {
		l.stop()
	}
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} { return l.stopped }

func (l *Loop) stop() {
	l.stopOnce.Do(func() {
		close(l.stopped)
		l.drain()
	})
}

// drain fails whatever is still buffered so no dead task outlives the loop.
func (l *Loop) drain() {
	for {
		select {
		case task := <-l.tasks:
			task.Fail(ErrClosed)
		default:
			return
		}
	}
}
