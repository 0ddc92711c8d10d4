package workflow

import "errors"

var (
	// ErrLocked is returned for any mutation attempted against a locked
	// record. Locked records are immutable; callers supersede instead.
	ErrLocked = errors.New("estimation is locked")

	// ErrPrecondition is returned when a transition is attempted out of
	// order. It is always wrapped with the specific unmet precondition.
	ErrPrecondition = errors.New("precondition failed")

	// ErrValidation is returned when required input fields are missing or
	// malformed. It is always wrapped with field-level detail.
	ErrValidation = errors.New("validation failed")
)
