package service

import (
	"context"
	"log/slog"

	"github.com/goatkit/goatdesk/internal/models"
	"github.com/goatkit/goatdesk/internal/repository"
)

// TicketService enforces the ticket lifecycle and business rules on top of
// raw repository CRUD. Validation failures never reach storage; not-found
// outcomes from the repository pass through untouched.
type TicketService struct {
	repo repository.TicketRepository
	log  *slog.Logger
}

// NewTicketService creates a ticket service. A nil logger falls back to the
// process default.
func NewTicketService(repo repository.TicketRepository, log *slog.Logger) *TicketService {
	if log == nil {
		log = slog.Default()
	}
	return &TicketService{repo: repo, log: log}
}

// Create validates the request and persists a new open ticket.
func (s *TicketService) Create(ctx context.Context, req models.TicketCreateRequest) (*models.Ticket, error) {
	if err := models.ValidateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := models.ValidateDescription(req.Description); err != nil {
		return nil, err
	}

	ticket, err := s.repo.Create(ctx, req.Title, req.Description)
	if err != nil {
		return nil, err
	}
	s.log.Info("ticket created", "id", ticket.ID, "title", ticket.Title)
	return ticket, nil
}

// Get retrieves a single ticket.
func (s *TicketService) Get(ctx context.Context, id int64) (*models.Ticket, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of tickets in creation order. Out-of-range pagination
// parameters are clamped, never rejected: skip below zero becomes zero and
// limit is forced into [1, MaxPageSize].
func (s *TicketService) List(ctx context.Context, skip, limit int) ([]*models.Ticket, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 1
	}
	if limit > models.MaxPageSize {
		limit = models.MaxPageSize
	}
	return s.repo.List(ctx, skip, limit)
}

// Update applies a partial title/description change. A request that carries a
// status value is rejected outright: status transitions have dedicated
// operations and are never accepted through the update path.
func (s *TicketService) Update(ctx context.Context, id int64, req models.TicketUpdateRequest) (*models.Ticket, error) {
	if req.RawStatus != nil {
		return nil, &models.ValidationError{Field: "status", Reason: "cannot be set via update; use the close, stall or reopen operations"}
	}
	if req.Title != nil {
		if err := models.ValidateTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := models.ValidateDescription(*req.Description); err != nil {
			return nil, err
		}
	}

	ticket, err := s.repo.Update(ctx, id, req.Title, req.Description)
	if err != nil {
		return nil, err
	}
	s.log.Info("ticket updated", "id", ticket.ID)
	return ticket, nil
}

// Close transitions a ticket to its terminal state. Closing an already-closed
// ticket is a no-op success.
func (s *TicketService) Close(ctx context.Context, id int64) (*models.Ticket, error) {
	ticket, err := s.repo.Close(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("ticket closed", "id", ticket.ID)
	return ticket, nil
}

// Stall parks an open ticket. Already-stalled tickets pass through unchanged;
// closed tickets are rejected.
func (s *TicketService) Stall(ctx context.Context, id int64) (*models.Ticket, error) {
	ticket, err := s.repo.Stall(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("ticket stalled", "id", ticket.ID)
	return ticket, nil
}

// Reopen returns a stalled ticket to open. Closed tickets stay closed.
func (s *TicketService) Reopen(ctx context.Context, id int64) (*models.Ticket, error) {
	ticket, err := s.repo.Reopen(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("ticket reopened", "id", ticket.ID)
	return ticket, nil
}

// Delete removes a ticket permanently.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("ticket deleted", "id", id)
	return nil
}
