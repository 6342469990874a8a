package rental

import "errors"

// ErrInvalidState is returned when a state lies outside the capacity grid.
var ErrInvalidState = errors.New("invalid state")

// ErrInvalidAction is returned when a transfer is outside the action range of a state.
var ErrInvalidAction = errors.New("invalid action")
