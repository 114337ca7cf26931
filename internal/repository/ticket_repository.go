package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/spec-kit/maintenance-desk/internal/domain"
)

// ErrTicketNotFound is returned when no ticket carries the requested id.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketListener observes every successful mutation.
type TicketListener func(ticket domain.Ticket)

// TicketRepository is the sole owner and writer of the live ticket collection.
type TicketRepository interface {
	List(ctx context.Context) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	FindByUnit(ctx context.Context, unitNumber string) (*domain.Ticket, error)
	Claim(ctx context.Context, id, staffID string) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error)
	UpdatePriority(ctx context.Context, id string, priority domain.TicketPriority) (*domain.Ticket, error)
	AddNote(ctx context.Context, id, text string) (*domain.Ticket, error)
	AddPhoto(ctx context.Context, id, ref string) (*domain.Ticket, error)
	Complete(ctx context.Context, id string) (*domain.Ticket, error)
	Subscribe(listener TicketListener)
}

// ticketRepository keeps tickets in an ordered snapshot indexed by id.
// Each mutation swaps in a new snapshot; published snapshots are never
// written to again.
type ticketRepository struct {
	mu        sync.RWMutex
	snapshot  []domain.Ticket
	index     map[string]int
	listeners []TicketListener
}

// NewTicketRepository seeds the store with tickets in the given order.
func NewTicketRepository(seed []domain.Ticket) TicketRepository {
	r := &ticketRepository{index: make(map[string]int, len(seed))}
	r.snapshot = make([]domain.Ticket, 0, len(seed))
	for _, ticket := range seed {
		if _, dup := r.index[ticket.ID]; dup {
			continue
		}
		r.index[ticket.ID] = len(r.snapshot)
		r.snapshot = append(r.snapshot, ticket.Clone())
	}
	return r
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	r.mu.RLock()
	snapshot := r.snapshot
	r.mu.RUnlock()

	out := make([]domain.Ticket, len(snapshot))
	for i := range snapshot {
		out[i] = snapshot[i].Clone()
	}
	return out, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.index[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	ticket := r.snapshot[pos].Clone()
	return &ticket, nil
}

// FindByUnit returns the first ticket in collection order for the unit.
func (r *ticketRepository) FindByUnit(ctx context.Context, unitNumber string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.snapshot {
		if r.snapshot[i].UnitNumber == unitNumber {
			ticket := r.snapshot[i].Clone()
			return &ticket, nil
		}
	}
	return nil, ErrTicketNotFound
}

func (r *ticketRepository) Claim(ctx context.Context, id, staffID string) (*domain.Ticket, error) {
	return r.mutate(id, func(t *domain.Ticket) bool {
		assignee := staffID
		t.AssignedTo = &assignee
		if t.Status == domain.TicketStatusOpen {
			t.Status = domain.TicketStatusInProgress
		}
		return true
	})
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	return r.mutate(id, func(t *domain.Ticket) bool {
		t.Status = status
		return true
	})
}

func (r *ticketRepository) UpdatePriority(ctx context.Context, id string, priority domain.TicketPriority) (*domain.Ticket, error) {
	return r.mutate(id, func(t *domain.Ticket) bool {
		t.Priority = priority
		return true
	})
}

// AddNote ignores blank text and returns the unchanged ticket.
func (r *ticketRepository) AddNote(ctx context.Context, id, text string) (*domain.Ticket, error) {
	return r.mutate(id, func(t *domain.Ticket) bool {
		if strings.TrimSpace(text) == "" {
			return false
		}
		t.Notes = append(t.Notes, text)
		return true
	})
}

func (r *ticketRepository) AddPhoto(ctx context.Context, id, ref string) (*domain.Ticket, error) {
	return r.mutate(id, func(t *domain.Ticket) bool {
		if strings.TrimSpace(ref) == "" {
			return false
		}
		t.Photos = append(t.Photos, ref)
		return true
	})
}

// Complete files the ticket under Archive; it does not set Complete.
func (r *ticketRepository) Complete(ctx context.Context, id string) (*domain.Ticket, error) {
	return r.UpdateStatus(ctx, id, domain.TicketStatusArchive)
}

func (r *ticketRepository) Subscribe(listener TicketListener) {
	if listener == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}

// mutate applies fn to a private copy of the ticket and, when fn reports a
// change, publishes a new snapshot and notifies listeners outside the lock.
func (r *ticketRepository) mutate(id string, fn func(t *domain.Ticket) bool) (*domain.Ticket, error) {
	r.mu.Lock()
	pos, ok := r.index[id]
	if !ok {
		r.mu.Unlock()
		return nil, ErrTicketNotFound
	}
	updated := r.snapshot[pos].Clone()
	if !fn(&updated) {
		r.mu.Unlock()
		return &updated, nil
	}
	next := make([]domain.Ticket, len(r.snapshot))
	copy(next, r.snapshot)
	next[pos] = updated
	r.snapshot = next
	listeners := append([]TicketListener{}, r.listeners...)
	r.mu.Unlock()

	for _, listener := range listeners {
		listener(updated.Clone())
	}
	result := updated.Clone()
	return &result, nil
}
