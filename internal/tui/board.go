// Package tui renders widgets on a bubbletea board whose event loop owns
// them.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/uimutate/internal/dispatch"
	"github.com/jask/uimutate/internal/mutate"
	"github.com/jask/uimutate/internal/widget"
)

// StatusMsg replaces the status line.
type StatusMsg struct {
	Text  string
	IsErr bool
}

// Board is the bubbletea model. Its widgets must be owned by the board's
// Dispatcher; Update and View both run on the program's event loop.
type Board struct {
	ctx        context.Context
	title      string
	dispatcher *Dispatcher
	widgets    []*widget.Widget
	keys       keyMap
	focus      int
	width      int
	status     string
	statusErr  bool
}

func New(ctx context.Context, title string, d *Dispatcher, widgets []*widget.Widget) *Board {
	return &Board{
		ctx:        ctx,
		title:      title,
		dispatcher: d,
		widgets:    widgets,
		keys:       newKeyMap(),
		width:      60,
		status:     "Ready",
	}
}

func (b *Board) Init() tea.Cmd { return nil }

func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invokeMsg:
		b.dispatcher.run(b.ctx, msg)
		return b, nil
	case tea.WindowSizeMsg:
		b.width = msg.Width
		return b, nil
	case StatusMsg:
		b.status, b.statusErr = msg.Text, msg.IsErr
		return b, nil
	case tea.KeyMsg:
		return b.updateKey(msg)
	}
	return b, nil
}

func (b *Board) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, b.keys.Next):
		b.moveFocus(1)
	case key.Matches(msg, b.keys.Prev):
		b.moveFocus(-1)
	case key.Matches(msg, b.keys.ToggleVisible):
		if w := b.focused(); w != nil {
			b.apply(mutate.SetVisible(w, !w.Visible()), fmt.Sprintf("%s visible=%t", w.Name(), !w.Visible()))
		}
	case key.Matches(msg, b.keys.ToggleEnabled):
		if w := b.focused(); w != nil {
			b.apply(mutate.SetEnabled(w, !w.Enabled()), fmt.Sprintf("%s enabled=%t", w.Name(), !w.Enabled()))
		}
	case key.Matches(msg, b.keys.Reset):
		mods := make([]mutate.Modification, 0, len(b.widgets))
		for _, w := range b.widgets {
			mods = append(mods, mutate.SetVisibleAndEnabled(w, true, true))
		}
		b.apply(mutate.NewComposite(mods...), "all widgets shown")
	}
	return b, nil
}

// apply runs m on the event loop. The context is marked, so no hop happens.
func (b *Board) apply(m mutate.Modification, done string) {
	if err := m.Apply(b.loopCtx()); err != nil {
		b.status, b.statusErr = err.Error(), true
		return
	}
	b.status, b.statusErr = done, false
}

func (b *Board) loopCtx() context.Context {
	return dispatch.WithAffinity(b.ctx, b.dispatcher)
}

func (b *Board) moveFocus(delta int) {
	n := len(b.widgets)
	if n == 0 {
		return
	}
	b.focus = ((b.focus+delta)%n + n) % n
}

func (b *Board) focused() *widget.Widget {
	if b.focus < 0 || b.focus >= len(b.widgets) {
		return nil
	}
	return b.widgets[b.focus]
}

func (b *Board) View() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(b.title))
	sb.WriteString("\n\n")
	for i, w := range b.widgets {
		sb.WriteString(renderPane(w.State(), b.width, i == b.focus))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	if b.statusErr {
		sb.WriteString(statusErrBarStyle.Render(b.status))
	} else {
		sb.WriteString(statusBarStyle.Render(b.status))
	}
	sb.WriteString("\n")
	sb.WriteString(footerStyle.Render(b.helpLine()))
	return sb.String()
}

func (b *Board) helpLine() string {
	parts := make([]string, 0, len(b.keys.ShortHelp()))
	for _, k := range b.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, keyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
