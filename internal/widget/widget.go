// Package widget holds the loop-owned widgets mutations target.
package widget

import (
	"context"

	"github.com/google/uuid"

	"github.com/jask/uimutate/internal/dispatch"
)

// Widget is owned by the loop it was created on. Its getters and setters do
// no synchronisation and must only be called from that loop; use the mutate
// package to change a widget from anywhere else.
type Widget struct {
	id      uuid.UUID
	name    string
	owner   dispatch.Dispatcher
	label   string
	visible bool
	enabled bool
}

// State is a copy of a widget's fields.
type State struct {
	ID      uuid.UUID
	Name    string
	Label   string
	Visible bool
	Enabled bool
}

// New creates a visible, enabled widget owned by owner. The label defaults to
// the name.
func New(owner dispatch.Dispatcher, name string) *Widget {
	return &Widget{
		id:      uuid.New(),
		name:    name,
		owner:   owner,
		label:   name,
		visible: true,
		enabled: true,
	}
}

func (w *Widget) ID() uuid.UUID     { return w.id }
func (w *Widget) Name() string      { return w.name }
func (w *Widget) Label() string     { return w.label }
func (w *Widget) Visible() bool     { return w.visible }
func (w *Widget) Enabled() bool     { return w.enabled }
func (w *Widget) SetLabel(s string) { w.label = s }
func (w *Widget) SetVisible(v bool) { w.visible = v }
func (w *Widget) SetEnabled(v bool) { w.enabled = v }

func (w *Widget) State() State {
	return State{ID: w.id, Name: w.name, Label: w.label, Visible: w.visible, Enabled: w.enabled}
}

func (w *Widget) InvokeRequired(ctx context.Context) bool {
	return !w.owner.OnLoop(ctx)
}

func (w *Widget) Invoke(ctx context.Context, fn func(context.Context) error) error {
	return w.owner.Invoke(ctx, fn)
}

// Snapshot reads the widget's state on its owning loop.
func (w *Widget) Snapshot(ctx context.Context) (State, error) {
	var s State
	err := w.owner.Invoke(ctx, func(context.Context) error {
		s = w.State()
		return nil
	})
	return s, err
}
