// Package dispatch provides the owning executor that widgets are bound to.
//
// A Loop is a single consumer goroutine draining a FIFO task queue. Work
// submitted from any other goroutine is handed to the loop and the submitter
// blocks until the loop has run it. Go has no goroutine identity, so affinity
// travels in the context: every task the loop runs receives a context marked
// with that loop, and OnLoop reports whether a context carries the mark.
//
// Code running on the loop must pass the context it was given to anything
// that may dispatch again. Dispatching from the loop with an unmarked context
// queues behind the running task and never completes.
package dispatch
