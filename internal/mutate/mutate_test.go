package mutate_test

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/jask/uimutate/internal/dispatch"
	"github.com/jask/uimutate/internal/mutate"
	"github.com/jask/uimutate/internal/widget"
)

func startLoop(t *testing.T) (*dispatch.Loop, *dispatch.Metrics) {
	t.Helper()
	m := dispatch.NewMetrics(prometheus.NewRegistry())
	l := dispatch.New(dispatch.WithLogger(log.New(io.Discard, "", 0)), dispatch.WithMetrics(m))
	go func() { _ = l.Run(context.Background()) }()
	t.Cleanup(func() {
		l.Close()
		<-l.Done()
	})
	return l, m
}

func hiddenDisabled(owner dispatch.Dispatcher, name string) *widget.Widget {
	w := widget.New(owner, name)
	w.SetVisible(false)
	w.SetEnabled(false)
	return w
}

func TestApplyOnOwningLoopMatchesUnchecked(t *testing.T) {
	l, m := startLoop(t)
	a := hiddenDisabled(l, "a")
	b := hiddenDisabled(l, "b")

	require.NoError(t, l.Invoke(context.Background(), func(ctx context.Context) error {
		if err := mutate.SetVisibleAndEnabled(a, true, false).Apply(ctx); err != nil {
			return err
		}
		return mutate.SetVisibleAndEnabled(b, true, false).ApplyUnchecked(ctx)
	}))

	sa, err := a.Snapshot(context.Background())
	require.NoError(t, err)
	sb, err := b.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, sa.Visible, sb.Visible)
	require.Equal(t, sa.Enabled, sb.Enabled)
	require.True(t, sa.Visible)
	require.False(t, sa.Enabled)

	// only the outer Invoke and the two snapshots crossed goroutines
	require.Equal(t, 3.0, testutil.ToFloat64(m.Marshaled()))
}

func TestApplyFromForeignGoroutineMarshals(t *testing.T) {
	l, m := startLoop(t)
	w := hiddenDisabled(l, "status")

	var ranOnLoop bool
	mut := mutate.New(w, func(w *widget.Widget) error {
		w.SetVisible(true)
		return nil
	})
	noop := mutate.New(w, func(w *widget.Widget) error { return nil })
	require.NoError(t, mut.Apply(context.Background()))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Marshaled()))

	// the mutation re-enters Apply on the loop, where no second hop happens
	require.NoError(t, l.Invoke(context.Background(), func(ctx context.Context) error {
		ranOnLoop = !w.InvokeRequired(ctx)
		return noop.Apply(ctx)
	}))
	require.True(t, ranOnLoop)
	require.Equal(t, 2.0, testutil.ToFloat64(m.Marshaled()))

	// Apply has returned, so the new state is already observable
	s, err := w.Snapshot(context.Background())
	require.NoError(t, err)
	require.True(t, s.Visible)
	require.False(t, s.Enabled)
}

func TestApplyReturnsModifierError(t *testing.T) {
	l, _ := startLoop(t)
	w := widget.New(l, "status")
	boom := errors.New("boom")

	err := mutate.New(w, func(*widget.Widget) error { return boom }).Apply(context.Background())
	require.Same(t, boom, err)
	err = mutate.New(w, func(*widget.Widget) error { return boom }).ApplyUnchecked(context.Background())
	require.Same(t, boom, err)
}

func TestApplyPanicSurfacesOnCaller(t *testing.T) {
	l, _ := startLoop(t)
	w := widget.New(l, "status")

	require.PanicsWithValue(t, "disposed", func() {
		_ = mutate.New(w, func(*widget.Widget) error { panic("disposed") }).Apply(context.Background())
	})
}

func TestApplyOnStoppedLoop(t *testing.T) {
	l := dispatch.New(dispatch.WithLogger(log.New(io.Discard, "", 0)))
	l.Close()
	w := widget.New(l, "status")

	err := mutate.SetVisible(w, false).Apply(context.Background())
	require.ErrorIs(t, err, dispatch.ErrClosed)
	require.True(t, w.Visible())
}

func TestOptionalWithoutControlIsNoop(t *testing.T) {
	called := false
	modifier := func(*widget.Widget) error {
		called = true
		return nil
	}

	var typedNil *widget.Widget
	opt := mutate.NewOptional(typedNil, modifier)
	require.NoError(t, opt.Apply(context.Background()))
	require.NoError(t, opt.ApplyUnchecked(context.Background()))

	var unbound mutate.Toggleable
	iface := mutate.NewOptional(unbound, func(mutate.Toggleable) error {
		called = true
		return nil
	})
	require.NoError(t, iface.Apply(context.Background()))
	require.NoError(t, iface.ApplyUnchecked(context.Background()))

	require.False(t, called)
}

func TestOptionalWithControlApplies(t *testing.T) {
	l, m := startLoop(t)
	w := hiddenDisabled(l, "status")

	opt := mutate.NewOptional(w, func(w *widget.Widget) error {
		w.SetEnabled(true)
		return nil
	})
	require.NoError(t, opt.Apply(context.Background()))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Marshaled()))

	s, err := w.Snapshot(context.Background())
	require.NoError(t, err)
	require.True(t, s.Enabled)
}

func TestActionRunsOnCaller(t *testing.T) {
	runs := 0
	a := mutate.Action{Fn: func() error {
		runs++
		return nil
	}}
	require.NoError(t, a.Apply(context.Background()))
	require.NoError(t, a.ApplyUnchecked(context.Background()))
	require.Equal(t, 2, runs)

	boom := errors.New("boom")
	require.Same(t, boom, mutate.Action{Fn: func() error { return boom }}.Apply(context.Background()))
}

func TestPresetScenarioFromEitherSide(t *testing.T) {
	l, _ := startLoop(t)

	foreign := hiddenDisabled(l, "foreign")
	require.NoError(t, mutate.SetVisibleAndEnabled(foreign, true, true).Apply(context.Background()))

	owned := hiddenDisabled(l, "owned")
	require.NoError(t, l.Invoke(context.Background(), func(ctx context.Context) error {
		return mutate.SetVisibleAndEnabled(owned, true, true).Apply(ctx)
	}))

	for _, w := range []*widget.Widget{foreign, owned} {
		s, err := w.Snapshot(context.Background())
		require.NoError(t, err)
		require.True(t, s.Visible, w.Name())
		require.True(t, s.Enabled, w.Name())
	}
}

func TestSinglePresets(t *testing.T) {
	l, _ := startLoop(t)
	w := widget.New(l, "status")

	require.NoError(t, mutate.SetVisible(w, false).Apply(context.Background()))
	require.NoError(t, mutate.SetEnabled(w, false).Apply(context.Background()))
	s, err := w.Snapshot(context.Background())
	require.NoError(t, err)
	require.False(t, s.Visible)
	require.False(t, s.Enabled)
}
