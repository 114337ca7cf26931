package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/maintenance-desk/internal/approval"
	"github.com/spec-kit/maintenance-desk/internal/domain"
	"github.com/spec-kit/maintenance-desk/internal/events"
	"github.com/spec-kit/maintenance-desk/internal/query"
	"github.com/spec-kit/maintenance-desk/internal/repository"
	apperrors "github.com/spec-kit/maintenance-desk/pkg/util/errorutil"
)

// TicketService is the lifecycle controller: it authorizes and sequences
// every ticket mutation before it reaches the store.
type TicketService struct {
	tickets    repository.TicketRepository
	activity   repository.TicketActivityRepository
	history    repository.UnitHistoryRepository
	approvals  approval.Router
	dispatcher events.Dispatcher
	policy     LifecyclePolicy

	// mu makes check-then-write sequences atomic across requests.
	mu sync.Mutex
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo      repository.TicketRepository
	ActivityRepo    repository.TicketActivityRepository
	UnitHistoryRepo repository.UnitHistoryRepository
	Approvals       approval.Router
	Dispatcher      events.Dispatcher
	Policy          LifecyclePolicy
}

// TicketQuery selects a queue tab and free-text search.
type TicketQuery struct {
	View   query.View
	Search string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		activity:   deps.ActivityRepo,
		history:    deps.UnitHistoryRepo,
		approvals:  deps.Approvals,
		dispatcher: deps.Dispatcher,
		policy:     deps.Policy,
	}
}

// ListTickets returns the tab contents for staffID.
func (s *TicketService) ListTickets(ctx context.Context, staffID string, q TicketQuery) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return query.Filter(tickets, q.View, q.Search, staffID), nil
}

// CountTickets returns tab sizes for staffID.
func (s *TicketService) CountTickets(ctx context.Context, staffID, search string) (query.Counts, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return query.Counts{}, apperrors.MapError(err)
	}
	return query.Count(tickets, search, staffID), nil
}

// GetTicket fetches a single ticket.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, mapTicketError(err, ticketID)
	}
	return ticket, nil
}

// ListActivity returns the audit trail of a ticket, oldest first.
func (s *TicketService) ListActivity(ctx context.Context, ticketID string) ([]domain.TicketActivity, error) {
	if _, err := s.GetTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	if s.activity == nil {
		return []domain.TicketActivity{}, nil
	}
	return s.activity.ListByTicket(ctx, ticketID)
}

// ClaimTicket assigns an unclaimed Open ticket to staffID. Claiming one's
// own ticket again changes nothing.
func (s *TicketService) ClaimTicket(ctx context.Context, staffID, ticketID string) (*domain.Ticket, error) {
	if strings.TrimSpace(staffID) == "" {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, mapTicketError(err, ticketID)
	}
	if ticket.IsAssignedTo(staffID) {
		return ticket, nil
	}
	if ticket.IsAssigned() {
		return nil, apperrors.NewConflict("ticket already claimed", map[string]any{
			"ticket_id":   ticketID,
			"assigned_to": *ticket.AssignedTo,
		})
	}
	if ticket.Status != domain.TicketStatusOpen {
		return nil, apperrors.NewConflict("only open tickets can be claimed", map[string]any{
			"ticket_id": ticketID,
			"status":    ticket.Status,
		})
	}

	oldStatus := ticket.Status
	updated, err := s.tickets.Claim(ctx, ticketID, staffID)
	if err != nil {
		return nil, mapTicketError(err, ticketID)
	}
	if err := s.recordActivity(ctx, staffID, ticketID, domain.ChangeTypeClaim,
		map[string]any{"assigned_to": nil, "status": oldStatus},
		map[string]any{"assigned_to": staffID, "status": updated.Status}); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketClaimed,
		TicketID: ticketID,
		StaffID:  staffID,
		Payload: events.TicketClaimedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// UpdateStatus moves the ticket to newStatus on behalf of its assignee.
func (s *TicketService) UpdateStatus(ctx context.Context, staffID, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.assignedTicket(ctx, staffID, ticketID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckTransition(ticket.Status, newStatus); err != nil {
		return nil, err
	}
	if ticket.Status == newStatus {
		return ticket, nil
	}
	oldStatus := ticket.Status
	updated, err := s.tickets.UpdateStatus(ctx, ticketID, newStatus)
	if err != nil {
		return nil, mapTicketError(err, ticketID)
	}
	if err := s.recordStatusChange(ctx, staffID, ticketID, oldStatus, newStatus); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticketID,
		StaffID:  staffID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return updated, nil
}

// UpdatePriority changes ticket priority on behalf of its assignee.
func (s *TicketService) UpdatePriority(ctx context.Context, staffID, ticketID string, newPriority domain.TicketPriority) (*domain.Ticket, error) {
	if !newPriority.Valid() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": newPriority})
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.assignedTicket(ctx, staffID, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Priority == newPriority {
		return ticket, nil
	}
	oldPriority := ticket.Priority
	updated, err := s.tickets.UpdatePriority(ctx, ticketID, newPriority)
	if err != nil {
		return nil, mapTicketError(err, ticketID)
	}
	if err := s.recordActivity(ctx, staffID, ticketID, domain.ChangeTypePriority,
		map[string]any{"priority": oldPriority},
		map[string]any{"priority": newPriority}); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketPriorityChanged,
		TicketID: ticketID,
		StaffID:  staffID,
		Payload: events.TicketPriorityChangedPayload{
			OldPriority: oldPriority,
			NewPriority: newPriority,
		},
	})
	return updated, nil
}

// AddNote appends a note for the assignee. Blank text is ignored.
func (s *TicketService) AddNote(ctx context.Context, staffID, ticketID, text string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.assignedTicket(ctx, staffID, ticketID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return ticket, nil
	}
	updated, err := s.tickets.AddNote(ctx, ticketID, text)
	if err != nil {
		return nil, mapTicketError(err, ticketID)
	}
	if err := s.recordActivity(ctx, staffID, ticketID, domain.ChangeTypeNote, nil,
		map[string]any{"note": text}); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketNoteAdded,
		TicketID: ticketID,
		StaffID:  staffID,
		Payload: events.TicketNoteAddedPayload{
			NoteIndex:   len(updated.Notes) - 1,
			BodyPreview: stringPreview(text, 120),
		},
	})
	return updated, nil
}

// AddPhoto attaches a staff photo reference. Blank references are ignored.
func (s *TicketService) AddPhoto(ctx context.Context, staffID, ticketID, ref string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.assignedTicket(ctx, staffID, ticketID)
	if err != nil {
		return nil, err
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ticket, nil
	}
	updated, err := s.tickets.AddPhoto(ctx, ticketID, ref)
	if err != nil {
		return nil, mapTicketError(err, ticketID)
	}
	if err := s.recordActivity(ctx, staffID, ticketID, domain.ChangeTypePhoto, nil,
		map[string]any{"photo": ref}); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketPhotoAdded,
		TicketID: ticketID,
		StaffID:  staffID,
		Payload:  events.TicketPhotoAddedPayload{Ref: ref},
	})
	return updated, nil
}

// SeekApproval forwards the ticket to the approval collaborator. The ticket
// itself is left unchanged.
func (s *TicketService) SeekApproval(ctx context.Context, staffID, ticketID string) (*approval.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.assignedTicket(ctx, staffID, ticketID)
	if err != nil {
		return nil, err
	}
	req := approval.Request{
		ID:           uuid.NewString(),
		TicketID:     ticket.ID,
		PropertyName: ticket.PropertyName,
		UnitNumber:   ticket.UnitNumber,
		IssueType:    ticket.IssueType,
		RequestedBy:  staffID,
		RequestedAt:  time.Now().UTC(),
	}
	if s.approvals != nil {
		if err := s.approvals.Route(ctx, req); err != nil {
			return nil, apperrors.NewInternalError(err)
		}
	}
	if err := s.recordActivity(ctx, staffID, ticketID, domain.ChangeTypeApprovalRequested, nil,
		map[string]any{"request_id": req.ID}); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketApprovalRequested,
		TicketID: ticketID,
		StaffID:  staffID,
		Payload:  events.TicketApprovalRequestedPayload{RequestID: req.ID},
	})
	return &req, nil
}

// CompleteTicket files the ticket under Archive. The name follows the
// "Complete" action of the queue card; the resulting status is Archive,
// not Complete.
func (s *TicketService) CompleteTicket(ctx context.Context, staffID, ticketID string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.assignedTicket(ctx, staffID, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusArchive {
		return ticket, nil
	}
	oldStatus := ticket.Status
	updated, err := s.tickets.Complete(ctx, ticketID)
	if err != nil {
		return nil, mapTicketError(err, ticketID)
	}
	if err := s.recordStatusChange(ctx, staffID, ticketID, oldStatus, updated.Status); err != nil {
		return nil, apperrors.MapError(err)
	}
	payload := events.TicketStatusChangedPayload{
		OldStatus: oldStatus,
		NewStatus: updated.Status,
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticketID,
		StaffID:  staffID,
		Payload:  payload,
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketArchived,
		TicketID: ticketID,
		StaffID:  staffID,
		Payload:  payload,
	})
	return updated, nil
}

// UnitHistoryResult is a unit's past tickets narrowed by a filter, along
// with every issue type the unit has seen.
type UnitHistoryResult struct {
	PropertyName string
	UnitNumber   string
	IssueTypes   []string
	Tickets      []domain.HistoricalTicket
}

// UnitHistory lists past tickets for a unit, narrowed by filter. IssueTypes
// is taken from the unfiltered records.
func (s *TicketService) UnitHistory(ctx context.Context, propertyName, unitNumber string, filter query.HistoryFilter) (*UnitHistoryResult, error) {
	result := &UnitHistoryResult{
		PropertyName: propertyName,
		UnitNumber:   unitNumber,
		IssueTypes:   []string{},
		Tickets:      []domain.HistoricalTicket{},
	}
	if s.history == nil {
		return result, nil
	}
	records, err := s.history.ListByUnit(ctx, propertyName, unitNumber)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	result.IssueTypes = query.IssueTypes(records)
	result.Tickets = query.FilterHistory(records, filter)
	return result, nil
}

// ResolveUnitProperty finds the property owning unitNumber in the live
// collection.
func (s *TicketService) ResolveUnitProperty(ctx context.Context, unitNumber string) (string, bool) {
	ticket, err := s.tickets.FindByUnit(ctx, unitNumber)
	if err != nil {
		return "", false
	}
	return ticket.PropertyName, true
}

// assignedTicket loads the ticket and verifies staffID is its assignee.
func (s *TicketService) assignedTicket(ctx context.Context, staffID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, mapTicketError(err, ticketID)
	}
	if !ticket.IsAssignedTo(staffID) {
		return nil, apperrors.NewPermissionDenied("only the assigned staff member may change this ticket", map[string]any{
			"ticket_id": ticketID,
		})
	}
	return ticket, nil
}

func mapTicketError(err error, ticketID string) error {
	if errors.Is(err, repository.ErrTicketNotFound) {
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	return apperrors.MapError(err)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *TicketService) recordStatusChange(ctx context.Context, staffID, ticketID string, oldStatus, newStatus domain.TicketStatus) error {
	return s.recordActivity(ctx, staffID, ticketID, domain.ChangeTypeStatus,
		map[string]any{"status": oldStatus},
		map[string]any{"status": newStatus})
}

func (s *TicketService) recordActivity(ctx context.Context, staffID, ticketID string, change domain.TicketChangeType, oldValue, newValue map[string]any) error {
	if s.activity == nil {
		return nil
	}
	return s.activity.Create(ctx, &domain.TicketActivity{
		TicketID:   ticketID,
		StaffID:    staffID,
		ChangeType: change,
		OldValue:   oldValue,
		NewValue:   newValue,
	})
}

// stringPreview shortens body to at most max runes.
func stringPreview(body string, max int) string {
	runes := []rune(strings.TrimSpace(body))
	if len(runes) <= max {
		return string(runes)
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
