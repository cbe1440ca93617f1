// Package mutate wraps widget changes so they can be applied from any
// goroutine. A Mutation checks whether the caller owns the widget's loop and
// marshals itself onto that loop when it does not, blocking until it ran.
//
// Nothing here logs, retries or wraps errors: whatever the modifier or the
// owning loop returns reaches the caller of Apply unchanged.
package mutate

import (
	"context"
	"reflect"
)

// Control is what a widget offers for loop affinity.
type Control interface {
	// InvokeRequired reports whether ctx is foreign to the widget's loop.
	InvokeRequired(ctx context.Context) bool
	// Invoke runs fn on the widget's loop and blocks until it returns.
	Invoke(ctx context.Context, fn func(context.Context) error) error
}

// Modification is anything that can be applied as a unit.
type Modification interface {
	// Apply marshals onto the owning loop when needed.
	Apply(ctx context.Context) error
	// ApplyUnchecked runs immediately on the calling goroutine.
	ApplyUnchecked(ctx context.Context) error
}

// Mutation pairs a control with the change to make to it.
type Mutation[C Control] struct {
	Control  C
	Modifier func(C) error
}

func New[C Control](control C, modifier func(C) error) Mutation[C] {
	return Mutation[C]{Control: control, Modifier: modifier}
}

func (m Mutation[C]) ApplyUnchecked(context.Context) error {
	return m.Modifier(m.Control)
}

func (m Mutation[C]) Apply(ctx context.Context) error {
	if m.Control.InvokeRequired(ctx) {
		return m.Control.Invoke(ctx, m.Apply)
	}
	return m.ApplyUnchecked(ctx)
}

// Optional is a Mutation whose control may never have been bound. With no
// control both Apply and ApplyUnchecked do nothing.
type Optional[C Control] struct {
	Control  C
	Modifier func(C) error
}

func NewOptional[C Control](control C, modifier func(C) error) Optional[C] {
	return Optional[C]{Control: control, Modifier: modifier}
}

func (m Optional[C]) ApplyUnchecked(context.Context) error {
	if absent(m.Control) {
		return nil
	}
	return m.Modifier(m.Control)
}

func (m Optional[C]) Apply(ctx context.Context) error {
	if absent(m.Control) {
		return nil
	}
	if m.Control.InvokeRequired(ctx) {
		return m.Control.Invoke(ctx, m.Apply)
	}
	return m.ApplyUnchecked(ctx)
}

// absent reports whether c is a nil interface or a typed nil.
func absent(c any) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Action is a change with no widget, so there is no loop to check.
type Action struct {
	Fn func() error
}

func (a Action) ApplyUnchecked(context.Context) error { return a.Fn() }

func (a Action) Apply(ctx context.Context) error { return a.ApplyUnchecked(ctx) }
