package models

import "errors"

// Error taxonomy shared by services and controllers.
var (
	// ErrValidation marks a malformed request, rejected before any side effect.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup of an unknown gathering or invitation ID.
	ErrNotFound = errors.New("not found")

	// ErrTerminalState marks a mutation attempt on a completed or cancelled gathering.
	ErrTerminalState = errors.New("gathering is in a terminal state")

	// ErrAlreadyResponded marks a second response to an invitation that was
	// already accepted, declined or expired.
	ErrAlreadyResponded = errors.New("invitation already responded to")
)
