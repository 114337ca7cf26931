package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-desk/internal/domain"
)

func newDemoRepo(t *testing.T) TicketRepository {
	t.Helper()
	return NewTicketRepository(DemoTickets())
}

func TestTicketRepository_ListPreservesSeedOrder(t *testing.T) {
	repo := newDemoRepo(t)

	tickets, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 8)
	for i, ticket := range tickets {
		assert.Equal(t, DemoTickets()[i].ID, ticket.ID)
	}
}

func TestTicketRepository_ClaimOpenTicketStartsWork(t *testing.T) {
	repo := newDemoRepo(t)

	ticket, err := repo.Claim(context.Background(), "T-2024-001", "John Smith")
	require.NoError(t, err)
	require.NotNil(t, ticket.AssignedTo)
	assert.Equal(t, "John Smith", *ticket.AssignedTo)
	assert.Equal(t, domain.TicketStatusInProgress, ticket.Status)

	stored, err := repo.GetByID(context.Background(), "T-2024-001")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, stored.Status)
}

func TestTicketRepository_ClaimKeepsNonOpenStatus(t *testing.T) {
	repo := newDemoRepo(t)

	ticket, err := repo.Claim(context.Background(), "T-2024-006", "Mike Johnson")
	require.NoError(t, err)
	assert.Equal(t, "Mike Johnson", *ticket.AssignedTo)
	assert.Equal(t, domain.TicketStatusComplete, ticket.Status)
}

func TestTicketRepository_UnknownIDIsNotFound(t *testing.T) {
	repo := newDemoRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "T-missing")
	assert.ErrorIs(t, err, ErrTicketNotFound)
	_, err = repo.Claim(ctx, "T-missing", "John Smith")
	assert.ErrorIs(t, err, ErrTicketNotFound)
	_, err = repo.UpdateStatus(ctx, "T-missing", domain.TicketStatusComplete)
	assert.ErrorIs(t, err, ErrTicketNotFound)
	_, err = repo.UpdatePriority(ctx, "T-missing", domain.TicketPriorityLow)
	assert.ErrorIs(t, err, ErrTicketNotFound)
	_, err = repo.AddNote(ctx, "T-missing", "note")
	assert.ErrorIs(t, err, ErrTicketNotFound)
	_, err = repo.Complete(ctx, "T-missing")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestTicketRepository_AddNote(t *testing.T) {
	repo := newDemoRepo(t)
	ctx := context.Background()

	for _, blank := range []string{"", "   ", "\n\t"} {
		ticket, err := repo.AddNote(ctx, "T-2024-002", blank)
		require.NoError(t, err)
		assert.Len(t, ticket.Notes, 2)
	}

	ticket, err := repo.AddNote(ctx, "T-2024-002", "fixed pipe")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Checked breaker box - circuit is fine",
		"Scheduled replacement for tomorrow",
		"fixed pipe",
	}, ticket.Notes)
}

func TestTicketRepository_CompleteArchives(t *testing.T) {
	repo := newDemoRepo(t)

	ticket, err := repo.Complete(context.Background(), "T-2024-002")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusArchive, ticket.Status)
}

func TestTicketRepository_UpdatePriorityAndPhoto(t *testing.T) {
	repo := newDemoRepo(t)
	ctx := context.Background()

	ticket, err := repo.UpdatePriority(ctx, "T-2024-003", domain.TicketPriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityHigh, ticket.Priority)

	ticket, err = repo.AddPhoto(ctx, "T-2024-003", "uploads/ac-unit.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/ac-unit.jpg"}, ticket.Photos)

	ticket, err = repo.AddPhoto(ctx, "T-2024-003", " ")
	require.NoError(t, err)
	assert.Len(t, ticket.Photos, 1)
}

func TestTicketRepository_ReturnedTicketsAreCopies(t *testing.T) {
	repo := newDemoRepo(t)
	ctx := context.Background()

	ticket, err := repo.GetByID(ctx, "T-2024-002")
	require.NoError(t, err)
	ticket.Notes[0] = "tampered"
	*ticket.AssignedTo = "Someone Else"

	stored, err := repo.GetByID(ctx, "T-2024-002")
	require.NoError(t, err)
	assert.Equal(t, "Checked breaker box - circuit is fine", stored.Notes[0])
	assert.Equal(t, "John Smith", *stored.AssignedTo)
}

func TestTicketRepository_SnapshotsAreStable(t *testing.T) {
	repo := newDemoRepo(t)
	ctx := context.Background()

	before, err := repo.List(ctx)
	require.NoError(t, err)

	_, err = repo.Claim(ctx, "T-2024-001", "John Smith")
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, before[0].Status)
	assert.Nil(t, before[0].AssignedTo)
}

func TestTicketRepository_SubscribersSeeCommittedTicket(t *testing.T) {
	repo := newDemoRepo(t)
	ctx := context.Background()

	var seen []domain.Ticket
	repo.Subscribe(func(ticket domain.Ticket) {
		stored, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, ticket.Status, stored.Status)
		seen = append(seen, ticket)
	})

	_, err := repo.Claim(ctx, "T-2024-003", "John Smith")
	require.NoError(t, err)
	_, err = repo.AddNote(ctx, "T-2024-003", "   ")
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, "T-2024-003", seen[0].ID)
	assert.Equal(t, domain.TicketStatusInProgress, seen[0].Status)
}

func TestTicketRepository_FindByUnit(t *testing.T) {
	repo := newDemoRepo(t)
	ctx := context.Background()

	ticket, err := repo.FindByUnit(ctx, "204")
	require.NoError(t, err)
	assert.Equal(t, "Sunset Apartments", ticket.PropertyName)

	_, err = repo.FindByUnit(ctx, "999")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestTicketRepository_ConcurrentNotesAreAllKept(t *testing.T) {
	repo := newDemoRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.AddNote(ctx, "T-2024-005", "checked")
		}()
	}
	wg.Wait()

	ticket, err := repo.GetByID(ctx, "T-2024-005")
	require.NoError(t, err)
	assert.Len(t, ticket.Notes, 50)
}
