package models

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by the repository and service layers. Handlers map
// these to HTTP statuses via the apierrors registry; nothing below the API
// layer knows about HTTP.
var (
	// ErrTicketNotFound is returned when an id does not resolve to a ticket
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrTicketClosed is returned when a mutation targets a closed ticket.
	// Closed is terminal: only the close operation may touch a closed row,
	// and that is a no-op.
	ErrTicketClosed = errors.New("ticket is closed")

	// ErrInvalidStatus is returned when a status value outside the defined
	// set reaches the type boundary. Unreachable through the HTTP surface;
	// kept as a defensive check for direct repository callers.
	ErrInvalidStatus = errors.New("invalid ticket status")

	// ErrStorageUnavailable is returned when the storage backend cannot be
	// reached. Not retried here; retry policy belongs to the deployment.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError reports a bad input value. It never reaches storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
