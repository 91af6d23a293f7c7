package reconcile

import (
	"errors"
	"fmt"
)

// ErrInvalidMode is returned by ParseMode for an unknown mode name.
var ErrInvalidMode = errors.New("invalid sync mode")

// Mode selects which passes a run performs.
type Mode string

const (
	ModeAddFuture           Mode = "add_future"
	ModeAddFutureRemovePast Mode = "add_future_remove_past"
	ModeRemovePast          Mode = "remove_past"
	ModeRemoveAll           Mode = "remove_all"
)

// Modes lists every valid mode.
var Modes = []Mode{ModeAddFuture, ModeAddFutureRemovePast, ModeRemovePast, ModeRemoveAll}

// ParseMode validates a mode name. Matching is case-sensitive.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, name)
}

// AddsEvents reports whether the mode runs the create/update pass.
func (m Mode) AddsEvents() bool {
	return m == ModeAddFuture || m == ModeAddFutureRemovePast
}

// DeletesEvents reports whether the mode runs the delete pass.
func (m Mode) DeletesEvents() bool {
	return m == ModeAddFutureRemovePast || m == ModeRemovePast || m == ModeRemoveAll
}

func (m Mode) String() string {
	return string(m)
}
