package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/maintenance-desk/internal/domain"
)

// TicketActivityRepository stores audit entries.
type TicketActivityRepository interface {
	Create(ctx context.Context, activity *domain.TicketActivity) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketActivity, error)
}

type ticketActivityRepository struct {
	mu      sync.RWMutex
	entries map[string][]domain.TicketActivity
	now     func() time.Time
}

// NewTicketActivityRepository builds an in-memory audit log.
func NewTicketActivityRepository() TicketActivityRepository {
	return &ticketActivityRepository{
		entries: make(map[string][]domain.TicketActivity),
		now:     time.Now,
	}
}

func (r *ticketActivityRepository) Create(ctx context.Context, activity *domain.TicketActivity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = r.now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[activity.TicketID] = append(r.entries[activity.TicketID], *activity)
	return nil
}

// ListByTicket returns entries oldest first.
func (r *ticketActivityRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.TicketActivity{}, r.entries[ticketID]...), nil
}
