package repository

import (
	"context"
	"sync"
	"time"

	"github.com/goatkit/goatdesk/internal/models"
)

// MemoryTicketRepository is an in-process TicketRepository guarded by a
// mutex. It exists for tests and zero-dependency setups; each mutation takes
// the lock for its full duration, which gives the same per-id atomicity the
// SQL implementation gets from single-statement updates.
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[int64]*models.Ticket
	order   []int64
	nextID  int64
}

// NewMemoryTicketRepository creates an empty in-memory ticket store.
func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{
		tickets: make(map[int64]*models.Ticket),
		nextID:  1,
	}
}

// Create assigns the next id in sequence. Ids are never reused after
// deletion because nextID only moves forward.
func (r *MemoryTicketRepository) Create(ctx context.Context, title, description string) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket := &models.Ticket{
		ID:          r.nextID,
		Title:       title,
		Description: description,
		Status:      models.StatusOpen,
		CreatedAt:   time.Now().UTC(),
	}
	r.nextID++
	r.tickets[ticket.ID] = ticket
	r.order = append(r.order, ticket.ID)

	return copyTicket(ticket), nil
}

func (r *MemoryTicketRepository) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	return copyTicket(ticket), nil
}

// List walks the insertion-order slice, skipping deleted ids.
func (r *MemoryTicketRepository) List(ctx context.Context, skip, limit int) ([]*models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.Ticket{}
	seen := 0
	for _, id := range r.order {
		ticket, ok := r.tickets[id]
		if !ok {
			continue
		}
		if seen < skip {
			seen++
			continue
		}
		if len(result) == limit {
			break
		}
		seen++
		result = append(result, copyTicket(ticket))
	}
	return result, nil
}

func (r *MemoryTicketRepository) Update(ctx context.Context, id int64, title, description *string) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	if title == nil && description == nil {
		return copyTicket(ticket), nil
	}
	if ticket.IsClosed() {
		return nil, models.ErrTicketClosed
	}

	if title != nil {
		ticket.Title = *title
	}
	if description != nil {
		ticket.Description = *description
	}
	return copyTicket(ticket), nil
}

func (r *MemoryTicketRepository) Close(ctx context.Context, id int64) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	ticket.Status = models.StatusClosed
	return copyTicket(ticket), nil
}

func (r *MemoryTicketRepository) Stall(ctx context.Context, id int64) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	if ticket.IsClosed() {
		return nil, models.ErrTicketClosed
	}
	ticket.Status = models.StatusStalled
	return copyTicket(ticket), nil
}

func (r *MemoryTicketRepository) Reopen(ctx context.Context, id int64) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	if ticket.IsClosed() {
		return nil, models.ErrTicketClosed
	}
	ticket.Status = models.StatusOpen
	return copyTicket(ticket), nil
}

func (r *MemoryTicketRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[id]; !ok {
		return models.ErrTicketNotFound
	}
	delete(r.tickets, id)
	return nil
}

// copyTicket hands callers a detached copy so no caller can mutate the stored
// record without going back through the repository.
func copyTicket(t *models.Ticket) *models.Ticket {
	c := *t
	return &c
}
