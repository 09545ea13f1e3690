package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrQuantityOutOfRange indicates a cart operation asked for a quantity
	// outside [1, 99], or a merge that would push a line past the cap. The
	// cart state is unchanged when this is returned.
	ErrQuantityOutOfRange = errors.New("quantity out of range")

	// ErrNothingToUndo indicates an undo was requested with an empty buffer.
	ErrNothingToUndo = errors.New("nothing to undo")
)
