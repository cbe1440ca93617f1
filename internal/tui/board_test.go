package tui

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/uimutate/internal/dispatch"
	"github.com/jask/uimutate/internal/mutate"
	"github.com/jask/uimutate/internal/widget"
)

func newTestBoard(t *testing.T, names ...string) (*Board, *Dispatcher, []*widget.Widget) {
	t.Helper()
	d := NewDispatcher(nil)
	widgets := make([]*widget.Widget, 0, len(names))
	for _, name := range names {
		widgets = append(widgets, widget.New(d, name))
	}
	return New(context.Background(), "test", d, widgets), d, widgets
}

// pump stands in for tea.Program: it feeds sent messages to Update on one
// goroutine.
func pump(t *testing.T, b *Board, d *Dispatcher) {
	t.Helper()
	msgs := make(chan tea.Msg)
	stop := make(chan struct{})
	d.Attach(func(msg tea.Msg) {
		select {
		case msgs <- msg:
		case <-stop:
		}
	})
	go func() {
		for {
			select {
			case msg := <-msgs:
				b.Update(msg)
			case <-stop:
				return
			}
		}
	}()
	t.Cleanup(func() {
		close(stop)
		d.Detach()
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDispatcherMarshalsIntoUpdate(t *testing.T) {
	b, d, ws := newTestBoard(t, "status")
	pump(t, b, d)
	w := ws[0]
	w.SetVisible(false)
	w.SetEnabled(false)

	require.True(t, w.InvokeRequired(context.Background()))
	require.NoError(t, mutate.SetVisibleAndEnabled(w, true, true).Apply(context.Background()))

	s, err := w.Snapshot(context.Background())
	require.NoError(t, err)
	require.True(t, s.Visible)
	require.True(t, s.Enabled)
}

func TestDispatcherOnLoopRunsInline(t *testing.T) {
	_, d, _ := newTestBoard(t)
	ctx := dispatch.WithAffinity(context.Background(), d)
	ran := false
	require.NoError(t, d.Invoke(ctx, func(context.Context) error {
		ran = true
		return nil
	}))
	require.True(t, ran)
}

func TestDispatcherErrors(t *testing.T) {
	_, d, _ := newTestBoard(t)
	noop := func(context.Context) error { return nil }

	require.ErrorIs(t, d.Invoke(context.Background(), noop), ErrNotAttached)

	d.Attach(func(tea.Msg) {})
	d.Detach()
	require.ErrorIs(t, d.Invoke(context.Background(), noop), dispatch.ErrClosed)
}

func TestDispatcherFailsPendingWorkOnDetach(t *testing.T) {
	_, d, _ := newTestBoard(t)
	sent := make(chan struct{})
	d.Attach(func(tea.Msg) { close(sent) })

	errc := make(chan error, 1)
	go func() {
		errc <- d.Invoke(context.Background(), func(context.Context) error {
			return errors.New("should not run")
		})
	}()
	<-sent
	d.Detach()
	require.ErrorIs(t, <-errc, dispatch.ErrClosed)
}

func TestKeysToggleFocusedWidget(t *testing.T) {
	b, _, ws := newTestBoard(t, "status", "cancel")

	b.Update(tea.KeyMsg{Type: tea.KeyTab})
	b.Update(runes("v"))
	require.True(t, ws[0].Visible())
	require.False(t, ws[1].Visible())

	b.Update(runes("e"))
	require.False(t, ws[1].Enabled())
	require.Contains(t, b.status, "cancel enabled=false")

	b.Update(runes("r"))
	for _, w := range ws {
		require.True(t, w.Visible())
		require.True(t, w.Enabled())
	}
}

func TestFocusWraps(t *testing.T) {
	b, _, _ := newTestBoard(t, "a", "b", "c")
	b.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 2, b.focus)
	b.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 0, b.focus)
}

func TestQuitKey(t *testing.T) {
	b, _, _ := newTestBoard(t, "a")
	_, cmd := b.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsWidgetState(t *testing.T) {
	b, _, ws := newTestBoard(t, "status", "progress")
	ws[0].SetLabel("Status")
	ws[1].SetLabel("Progress")
	ws[1].SetVisible(false)
	b.Update(StatusMsg{Text: "worker stopped", IsErr: true})

	out := b.View()
	require.Contains(t, out, "Status")
	require.Contains(t, out, "status · enabled")
	require.Contains(t, out, "Progress (hidden)")
	require.Contains(t, out, "worker stopped")
	require.Contains(t, out, "visible")
}

func TestProgramOwnsWidgets(t *testing.T) {
	b, d, ws := newTestBoard(t, "status")
	ws[0].SetVisible(false)

	p := tea.NewProgram(b, tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutSignalHandler())
	d.Attach(p.Send)
	done := make(chan error, 1)
	go func() {
		_, err := p.Run()
		d.Detach()
		done <- err
	}()

	require.NoError(t, mutate.SetVisible(ws[0], true).Apply(context.Background()))
	s, err := ws[0].Snapshot(context.Background())
	require.NoError(t, err)
	require.True(t, s.Visible)

	p.Quit()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("program did not stop")
	}
	require.ErrorIs(t, mutate.SetVisible(ws[0], false).Apply(context.Background()), dispatch.ErrClosed)
}
