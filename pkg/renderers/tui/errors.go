package tui

import "errors"

var (
	// ErrAborted signals the user aborted the session (Ctrl+C or quit).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSelection is returned when the driver reports an out-of-range choice.
	ErrNoSelection = errors.New("tui: invalid selection")
)
