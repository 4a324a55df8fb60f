package models

import (
	"fmt"
	"strings"
	"time"
)

// TicketStatus represents the lifecycle state of a ticket
type TicketStatus string

const (
	StatusOpen    TicketStatus = "open"
	StatusStalled TicketStatus = "stalled"
	StatusClosed  TicketStatus = "closed"
)

// Field bounds enforced before any storage call
const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 5000
)

// Pagination bounds for ticket listing
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// ParseTicketStatus validates a raw status string against the closed set
func ParseTicketStatus(raw string) (TicketStatus, error) {
	switch TicketStatus(raw) {
	case StatusOpen, StatusStalled, StatusClosed:
		return TicketStatus(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// IsValid returns true if the status is one of the three defined values
func (s TicketStatus) IsValid() bool {
	_, err := ParseTicketStatus(string(s))
	return err == nil
}

// Ticket represents a support ticket
type Ticket struct {
	ID          int64        `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Status      TicketStatus `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// IsClosed returns true if the ticket has reached its terminal state
func (t *Ticket) IsClosed() bool {
	return t.Status == StatusClosed
}

// TicketCreateRequest is the POST /tickets body
type TicketCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TicketUpdateRequest is the PUT /tickets/:id body.
// Status changes go through the dedicated close/stall/reopen endpoints.
// RawStatus catches clients that try to smuggle a status through the update
// path anyway, so they get a clear rejection instead of a silent drop.
type TicketUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	RawStatus   *string `json:"status"`
}

// ValidateTitle checks a title value against the entity invariants
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if len(title) > TitleMaxLength {
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("must be at most %d characters", TitleMaxLength)}
	}
	return nil
}

// ValidateDescription checks a description value against the entity invariants
func ValidateDescription(description string) error {
	if len(description) > DescriptionMaxLength {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("must be at most %d characters", DescriptionMaxLength)}
	}
	return nil
}
