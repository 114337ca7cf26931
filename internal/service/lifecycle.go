package service

import (
	"github.com/spec-kit/maintenance-desk/internal/domain"
	apperrors "github.com/spec-kit/maintenance-desk/pkg/util/errorutil"
)

// LifecyclePolicy decides which status moves the controller accepts.
//
// Statuses are ordered Open < In Progress < Complete < Archive. Moves go
// forward only, Archive is reachable from anywhere and nothing leaves it.
// AllowReopen permits backward moves between non-archived statuses.
type LifecyclePolicy struct {
	AllowReopen bool
}

// CheckTransition returns nil when current may become next.
func (p LifecyclePolicy) CheckTransition(current, next domain.TicketStatus) error {
	if !next.Valid() {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": next})
	}
	if current == next || next == domain.TicketStatusArchive {
		return nil
	}
	details := map[string]any{"from": current, "to": next}
	if current == domain.TicketStatusArchive {
		return apperrors.NewConflict("archived tickets cannot change status", details)
	}
	if next.Rank() < current.Rank() && !p.AllowReopen {
		return apperrors.NewConflict("invalid status transition", details)
	}
	return nil
}
