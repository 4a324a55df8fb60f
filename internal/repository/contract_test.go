package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goatkit/goatdesk/internal/models"
)

// testTicketRepository runs the repository contract against any
// implementation. Both the SQL and the memory repositories must pass it
// unchanged; the service layer depends only on this behavior.
func testTicketRepository(t *testing.T, newRepo func(t *testing.T) TicketRepository) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		repo := newRepo(t)

		before := time.Now().UTC().Add(-time.Second)
		ticket, err := repo.Create(ctx, "Printer jam", "Office printer offline")
		require.NoError(t, err)
		after := time.Now().UTC().Add(time.Second)

		assert.Positive(t, ticket.ID)
		assert.Equal(t, "Printer jam", ticket.Title)
		assert.Equal(t, "Office printer offline", ticket.Description)
		assert.Equal(t, models.StatusOpen, ticket.Status)
		assert.True(t, ticket.CreatedAt.After(before) && ticket.CreatedAt.Before(after),
			"created_at %v outside observed window [%v, %v]", ticket.CreatedAt, before, after)
	})

	t.Run("Create_UniqueIDs", func(t *testing.T) {
		repo := newRepo(t)

		seen := map[int64]bool{}
		for i := 0; i < 10; i++ {
			ticket, err := repo.Create(ctx, "ticket", "")
			require.NoError(t, err)
			assert.False(t, seen[ticket.ID], "id %d assigned twice", ticket.ID)
			seen[ticket.ID] = true
		}
	})

	t.Run("GetByID_RoundTrip", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, "Round trip", "check all fields survive")
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.Description, got.Description)
		assert.Equal(t, created.Status, got.Status)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Second)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, models.ErrTicketNotFound)
	})

	t.Run("List_Pagination", func(t *testing.T) {
		repo := newRepo(t)

		var ids []int64
		for i := 0; i < 7; i++ {
			ticket, err := repo.Create(ctx, "paged", "")
			require.NoError(t, err)
			ids = append(ids, ticket.ID)
		}

		page1, err := repo.List(ctx, 0, 3)
		require.NoError(t, err)
		page2, err := repo.List(ctx, 3, 3)
		require.NoError(t, err)
		page3, err := repo.List(ctx, 6, 3)
		require.NoError(t, err)

		var got []int64
		for _, p := range [][]*models.Ticket{page1, page2, page3} {
			for _, ticket := range p {
				got = append(got, ticket.ID)
			}
		}
		// Disjoint, order-consistent pages covering every ticket.
		assert.Equal(t, ids, got)
	})

	t.Run("List_StableAcrossInserts", func(t *testing.T) {
		repo := newRepo(t)

		for i := 0; i < 4; i++ {
			_, err := repo.Create(ctx, "early", "")
			require.NoError(t, err)
		}

		page1, err := repo.List(ctx, 0, 2)
		require.NoError(t, err)

		// A ticket inserted after the first page must not shift rows the
		// next page returns.
		_, err = repo.Create(ctx, "late", "")
		require.NoError(t, err)

		page2, err := repo.List(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, page2, 2)
		assert.Greater(t, page2[0].ID, page1[1].ID)
		assert.Equal(t, "early", page2[0].Title)
		assert.Equal(t, "early", page2[1].Title)
	})

	t.Run("List_Empty", func(t *testing.T) {
		repo := newRepo(t)

		tickets, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("Update_Partial", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, "before", "original")
		require.NoError(t, err)

		title := "after"
		updated, err := repo.Update(ctx, created.ID, &title, nil)
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Title)
		assert.Equal(t, "original", updated.Description, "unsupplied field must stay unchanged")
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, models.StatusOpen, updated.Status)
		assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		repo := newRepo(t)

		title := "x"
		_, err := repo.Update(ctx, 424242, &title, nil)
		assert.ErrorIs(t, err, models.ErrTicketNotFound)
	})

	t.Run("Update_ClosedRejected", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, "will close", "")
		require.NoError(t, err)
		_, err = repo.Close(ctx, created.ID)
		require.NoError(t, err)

		title := "too late"
		_, err = repo.Update(ctx, created.ID, &title, nil)
		assert.ErrorIs(t, err, models.ErrTicketClosed)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "will close", got.Title, "closed ticket must not be mutated")
	})

	t.Run("Close_Idempotent", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, "close me", "")
		require.NoError(t, err)

		first, err := repo.Close(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusClosed, first.Status)

		second, err := repo.Close(ctx, created.ID)
		require.NoError(t, err, "closing an already-closed ticket is a no-op success")
		assert.Equal(t, models.StatusClosed, second.Status)
	})

	t.Run("Close_NotFound", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Close(ctx, 31337)
		assert.ErrorIs(t, err, models.ErrTicketNotFound)
	})

	t.Run("Stall_And_Reopen", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, "flaky", "")
		require.NoError(t, err)

		stalled, err := repo.Stall(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusStalled, stalled.Status)

		// Stalling again is a no-op success.
		stalled, err = repo.Stall(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusStalled, stalled.Status)

		reopened, err := repo.Reopen(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusOpen, reopened.Status)
	})

	t.Run("Stall_ClosedRejected", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, "done", "")
		require.NoError(t, err)
		_, err = repo.Close(ctx, created.ID)
		require.NoError(t, err)

		_, err = repo.Stall(ctx, created.ID)
		assert.ErrorIs(t, err, models.ErrTicketClosed)
	})

	t.Run("Reopen_ClosedStaysTerminal", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, "terminal", "")
		require.NoError(t, err)
		_, err = repo.Close(ctx, created.ID)
		require.NoError(t, err)

		_, err = repo.Reopen(ctx, created.ID)
		assert.ErrorIs(t, err, models.ErrTicketClosed)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusClosed, got.Status)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, "to delete", "")
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, models.ErrTicketNotFound)

		// Repeat delete is not an idempotent success.
		err = repo.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, models.ErrTicketNotFound)
	})

	t.Run("Delete_NoIDReuse", func(t *testing.T) {
		repo := newRepo(t)

		first, err := repo.Create(ctx, "short lived", "")
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, first.ID))

		next, err := repo.Create(ctx, "successor", "")
		require.NoError(t, err)
		assert.Greater(t, next.ID, first.ID, "ids must never be reused after deletion")
	})

	t.Run("Close_Concurrent", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, "raced", "")
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = repo.Close(ctx, created.ID)
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			assert.NoError(t, err, "concurrent close %d", i)
		}

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusClosed, got.Status)
	})

	t.Run("Close_ConcurrentWithDelete", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, "race to the bottom", "")
		require.NoError(t, err)

		var wg sync.WaitGroup
		var closeErr, deleteErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, closeErr = repo.Close(ctx, created.ID)
		}()
		go func() {
			defer wg.Done()
			deleteErr = repo.Delete(ctx, created.ID)
		}()
		wg.Wait()

		// Either interleaving is acceptable; the close may observe NotFound
		// if the delete wins, but nothing may corrupt state.
		if closeErr != nil {
			assert.ErrorIs(t, closeErr, models.ErrTicketNotFound)
		}
		require.NoError(t, deleteErr)

		_, err = repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, models.ErrTicketNotFound)
	})
}
