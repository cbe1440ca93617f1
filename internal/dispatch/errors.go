package dispatch

import "errors"

var (
	// ErrClosed is returned when work is submitted to, or still queued on,
	// a loop that has stopped.
	ErrClosed = errors.New("dispatch: loop closed")
	// ErrRunning is returned by Run when the loop was already started.
	ErrRunning = errors.New("dispatch: loop already started")
)
