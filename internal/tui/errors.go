package tui

import "errors"

// ErrNotAttached is returned by Invoke before the dispatcher knows its program.
var ErrNotAttached = errors.New("tui: dispatcher not attached to a program")
