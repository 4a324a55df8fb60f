package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goatkit/goatdesk/internal/apierrors"
	"github.com/goatkit/goatdesk/internal/metrics"
	"github.com/goatkit/goatdesk/internal/models"
	"github.com/goatkit/goatdesk/internal/service"
)

// TicketHandler binds the ticket service to the HTTP surface.
type TicketHandler struct {
	svc *service.TicketService
}

// NewTicketHandler creates the handler set for the /tickets routes.
func NewTicketHandler(svc *service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// ticketID parses the :id path parameter. A non-numeric id is a malformed
// request, not a missing ticket.
func ticketID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apierrors.Error(c, apierrors.CodeInvalidID)
		return 0, false
	}
	return id, true
}

// sendDomainError maps a typed domain outcome to its HTTP representation.
// This mapping is the only place the error taxonomy meets status codes.
func sendDomainError(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		apierrors.ErrorWithMessage(c, apierrors.CodeTicketValidation, ve.Error())
	case errors.Is(err, models.ErrTicketNotFound):
		apierrors.Error(c, apierrors.CodeTicketNotFound)
	case errors.Is(err, models.ErrTicketClosed):
		apierrors.Error(c, apierrors.CodeTicketClosed)
	case errors.Is(err, models.ErrInvalidStatus):
		apierrors.Error(c, apierrors.CodeTicketBadStatus)
	case errors.Is(err, models.ErrStorageUnavailable):
		apierrors.Error(c, apierrors.CodeServiceUnavailable)
	default:
		apierrors.Error(c, apierrors.CodeInternalError)
	}
}

// observe records metrics for one handler invocation.
func observe(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.ObserveOperation(operation, outcome, time.Since(start))
}

// Create handles POST /tickets.
func (h *TicketHandler) Create(c *gin.Context) {
	start := time.Now()

	var req models.TicketCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		observe("create", start, err)
		return
	}

	ticket, err := h.svc.Create(c.Request.Context(), req)
	observe("create", start, err)
	if err != nil {
		sendDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// List handles GET /tickets with skip/limit pagination. Unparseable or
// out-of-range parameters fall back to defaults and clamping; listing never
// rejects pagination input.
func (h *TicketHandler) List(c *gin.Context) {
	start := time.Now()

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(models.DefaultPageSize)))
	if err != nil {
		limit = models.DefaultPageSize
	}

	tickets, err := h.svc.List(c.Request.Context(), skip, limit)
	observe("list", start, err)
	if err != nil {
		sendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// Get handles GET /tickets/:id.
func (h *TicketHandler) Get(c *gin.Context) {
	start := time.Now()

	id, ok := ticketID(c)
	if !ok {
		return
	}

	ticket, err := h.svc.Get(c.Request.Context(), id)
	observe("get", start, err)
	if err != nil {
		sendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Update handles PUT /tickets/:id. Partial body; absent fields stay
// unchanged. A status field in the body is rejected with 422.
func (h *TicketHandler) Update(c *gin.Context) {
	start := time.Now()

	id, ok := ticketID(c)
	if !ok {
		return
	}

	var req models.TicketUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		observe("update", start, err)
		return
	}

	ticket, err := h.svc.Update(c.Request.Context(), id, req)
	observe("update", start, err)
	if err != nil {
		sendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Close handles PATCH /tickets/:id/close.
func (h *TicketHandler) Close(c *gin.Context) {
	start := time.Now()

	id, ok := ticketID(c)
	if !ok {
		return
	}

	ticket, err := h.svc.Close(c.Request.Context(), id)
	observe("close", start, err)
	if err != nil {
		sendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Stall handles PATCH /tickets/:id/stall.
func (h *TicketHandler) Stall(c *gin.Context) {
	start := time.Now()

	id, ok := ticketID(c)
	if !ok {
		return
	}

	ticket, err := h.svc.Stall(c.Request.Context(), id)
	observe("stall", start, err)
	if err != nil {
		sendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Reopen handles PATCH /tickets/:id/reopen.
func (h *TicketHandler) Reopen(c *gin.Context) {
	start := time.Now()

	id, ok := ticketID(c)
	if !ok {
		return
	}

	ticket, err := h.svc.Reopen(c.Request.Context(), id)
	observe("reopen", start, err)
	if err != nil {
		sendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Delete handles DELETE /tickets/:id.
func (h *TicketHandler) Delete(c *gin.Context) {
	start := time.Now()

	id, ok := ticketID(c)
	if !ok {
		return
	}

	err := h.svc.Delete(c.Request.Context(), id)
	observe("delete", start, err)
	if err != nil {
		sendDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
