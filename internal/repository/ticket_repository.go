package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/goatkit/goatdesk/internal/database"
	"github.com/goatkit/goatdesk/internal/models"
)

// TicketRepository defines the storage contract for tickets. It owns identity
// assignment and row-level consistency; every state transition is a single
// conditional write so concurrent callers never widen a read-modify-write
// window beyond the backend's atomic update.
type TicketRepository interface {
	Create(ctx context.Context, title, description string) (*models.Ticket, error)
	GetByID(ctx context.Context, id int64) (*models.Ticket, error)
	List(ctx context.Context, skip, limit int) ([]*models.Ticket, error)
	Update(ctx context.Context, id int64, title, description *string) (*models.Ticket, error)
	Close(ctx context.Context, id int64) (*models.Ticket, error)
	Stall(ctx context.Context, id int64) (*models.Ticket, error)
	Reopen(ctx context.Context, id int64) (*models.Ticket, error)
	Delete(ctx context.Context, id int64) error
}

// SQLTicketRepository implements TicketRepository against a SQL backend.
type SQLTicketRepository struct {
	db *sqlx.DB
}

// NewSQLTicketRepository creates a ticket repository on an open database
// handle. The handle is injected so tests can substitute an isolated store.
func NewSQLTicketRepository(db *sqlx.DB) *SQLTicketRepository {
	return &SQLTicketRepository{db: db}
}

// q rewrites ? placeholders for the active driver.
func (r *SQLTicketRepository) q(query string) string {
	return database.ConvertPlaceholders(r.db.DriverName(), query)
}

// storageError wraps a backend failure so callers can detect it with
// errors.Is(err, models.ErrStorageUnavailable) without losing the cause text.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, models.ErrStorageUnavailable)
}

// Create inserts a new ticket with status open and a UTC creation timestamp,
// then reads the row back so the caller sees exactly what was persisted.
func (r *SQLTicketRepository) Create(ctx context.Context, title, description string) (*models.Ticket, error) {
	now := time.Now().UTC()

	id, err := database.InsertWithReturning(ctx, r.db, `
		INSERT INTO tickets (title, description, status, created_at)
		VALUES (?, ?, ?, ?)`,
		title, description, models.StatusOpen, now,
	)
	if err != nil {
		return nil, storageError("insert ticket", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a ticket by its id.
func (r *SQLTicketRepository) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.GetContext(ctx, &ticket, r.q(`
		SELECT id, title, description, status, created_at
		FROM tickets
		WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTicketNotFound
	}
	if err != nil {
		return nil, storageError("query ticket", err)
	}
	return &ticket, nil
}

// List returns tickets in insertion order. Auto-increment ids make the scan
// stable: a ticket inserted after a page is fetched never shifts rows that
// earlier pages already returned.
func (r *SQLTicketRepository) List(ctx context.Context, skip, limit int) ([]*models.Ticket, error) {
	tickets := []*models.Ticket{}
	err := r.db.SelectContext(ctx, &tickets, r.q(`
		SELECT id, title, description, status, created_at
		FROM tickets
		ORDER BY id
		LIMIT ? OFFSET ?`), limit, skip)
	if err != nil {
		return nil, storageError("list tickets", err)
	}
	return tickets, nil
}

// Update applies a partial title/description change. The status guard lives
// in the WHERE clause so the closed-ticket check and the write are one atomic
// statement. Status itself is never writable here.
func (r *SQLTicketRepository) Update(ctx context.Context, id int64, title, description *string) (*models.Ticket, error) {
	sets := []string{}
	args := []interface{}{}
	if title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *title)
	}
	if description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *description)
	}

	if len(sets) == 0 {
		// Nothing to change; behave as a read.
		return r.GetByID(ctx, id)
	}

	args = append(args, id, models.StatusClosed)
	query := r.q(fmt.Sprintf(
		"UPDATE tickets SET %s WHERE id = ? AND status != ?",
		strings.Join(sets, ", "),
	))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, storageError("update ticket", err)
	}

	// Re-read instead of trusting RowsAffected: MySQL reports 0 affected
	// rows for a value-preserving update, which is still a success here.
	ticket, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.IsClosed() {
		return nil, models.ErrTicketClosed
	}
	return ticket, nil
}

// Close sets the ticket status to closed. Closing an already-closed ticket is
// a no-op success; the final state is closed either way, so two concurrent
// closes on the same id both observe success.
func (r *SQLTicketRepository) Close(ctx context.Context, id int64) (*models.Ticket, error) {
	_, err := r.db.ExecContext(ctx, r.q(`
		UPDATE tickets SET status = ? WHERE id = ?`),
		models.StatusClosed, id)
	if err != nil {
		return nil, storageError("close ticket", err)
	}
	return r.GetByID(ctx, id)
}

// Stall moves an open ticket to stalled. Stalling an already-stalled ticket
// is a no-op success; stalling a closed ticket fails because closed is
// terminal.
func (r *SQLTicketRepository) Stall(ctx context.Context, id int64) (*models.Ticket, error) {
	_, err := r.db.ExecContext(ctx, r.q(`
		UPDATE tickets SET status = ? WHERE id = ? AND status != ?`),
		models.StatusStalled, id, models.StatusClosed)
	if err != nil {
		return nil, storageError("stall ticket", err)
	}

	ticket, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.IsClosed() {
		return nil, models.ErrTicketClosed
	}
	return ticket, nil
}

// Reopen moves a stalled ticket back to open. Reopening an open ticket is a
// no-op success; closed tickets stay closed.
func (r *SQLTicketRepository) Reopen(ctx context.Context, id int64) (*models.Ticket, error) {
	_, err := r.db.ExecContext(ctx, r.q(`
		UPDATE tickets SET status = ? WHERE id = ? AND status = ?`),
		models.StatusOpen, id, models.StatusStalled)
	if err != nil {
		return nil, storageError("reopen ticket", err)
	}

	ticket, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.IsClosed() {
		return nil, models.ErrTicketClosed
	}
	return ticket, nil
}

// Delete removes a ticket. Deleting a missing ticket returns not-found, so a
// repeated delete is an error rather than an idempotent success.
func (r *SQLTicketRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.q(`DELETE FROM tickets WHERE id = ?`), id)
	if err != nil {
		return storageError("delete ticket", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageError("delete ticket", err)
	}
	if affected == 0 {
		return models.ErrTicketNotFound
	}
	return nil
}
