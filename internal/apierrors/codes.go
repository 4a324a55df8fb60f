// Package apierrors provides structured API error codes and responses.
// All codes are namespaced (e.g., "core:invalid_id", "ticket:not_found").
package apierrors

import "net/http"

// Core error codes - registered automatically at init
const (
	CodeInvalidRequest     = "core:invalid_request"
	CodeInvalidID          = "core:invalid_id"
	CodeNotFound           = "core:not_found"
	CodeRateLimited        = "core:rate_limited"
	CodeInternalError      = "core:internal_error"
	CodeServiceUnavailable = "core:service_unavailable"
)

// Ticket error codes
const (
	CodeTicketNotFound   = "ticket:not_found"
	CodeTicketValidation = "ticket:validation_failed"
	CodeTicketClosed     = "ticket:closed"
	CodeTicketBadStatus  = "ticket:invalid_status"
)

// registeredErrors defines all error codes with default messages and HTTP status
var registeredErrors = []ErrorCode{
	{Code: CodeInvalidRequest, Message: "Invalid request body", HTTPStatus: http.StatusBadRequest},
	{Code: CodeInvalidID, Message: "Invalid ID format", HTTPStatus: http.StatusBadRequest},
	{Code: CodeNotFound, Message: "Resource not found", HTTPStatus: http.StatusNotFound},
	{Code: CodeRateLimited, Message: "Too many requests", HTTPStatus: http.StatusTooManyRequests},
	{Code: CodeInternalError, Message: "Internal server error", HTTPStatus: http.StatusInternalServerError},
	{Code: CodeServiceUnavailable, Message: "Service temporarily unavailable", HTTPStatus: http.StatusServiceUnavailable},

	{Code: CodeTicketNotFound, Message: "Ticket not found", HTTPStatus: http.StatusNotFound},
	{Code: CodeTicketValidation, Message: "Ticket validation failed", HTTPStatus: http.StatusUnprocessableEntity},
	{Code: CodeTicketClosed, Message: "Ticket is closed and can no longer be modified", HTTPStatus: http.StatusUnprocessableEntity},
	{Code: CodeTicketBadStatus, Message: "Invalid ticket status value", HTTPStatus: http.StatusUnprocessableEntity},
}

func init() {
	for _, e := range registeredErrors {
		Registry.Register(e)
	}
}
