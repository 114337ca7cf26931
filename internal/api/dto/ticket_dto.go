package dto

import (
	"time"

	"github.com/spec-kit/maintenance-desk/internal/domain"
)

// TicketResponse is the full ticket as presented to staff.
type TicketResponse struct {
	ID            string                `json:"id"`
	PropertyName  string                `json:"property_name"`
	UnitNumber    string                `json:"unit_number"`
	IssueType     string                `json:"issue_type"`
	Priority      domain.TicketPriority `json:"priority"`
	Status        domain.TicketStatus   `json:"status"`
	CreatedDate   string                `json:"created_date"`
	Description   string                `json:"description"`
	AssignedTo    *string               `json:"assigned_to"`
	TenantName    *string               `json:"tenant_name,omitempty"`
	TenantContact *string               `json:"tenant_contact,omitempty"`
	Notes         []string              `json:"notes"`
	Photos        []string              `json:"photos"`
	TenantPhotos  []string              `json:"tenant_photos"`
}

// TicketCountsResponse sizes every queue tab.
type TicketCountsResponse struct {
	Views      map[string]int `json:"views"`
	Unassigned int            `json:"unassigned"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePriorityRequest payload.
type UpdatePriorityRequest struct {
	Priority string `json:"priority"`
}

// AddNoteRequest payload.
type AddNoteRequest struct {
	Text string `json:"text"`
}

// AddPhotoRequest payload.
type AddPhotoRequest struct {
	Ref string `json:"ref"`
}

// ActivityResponse is one audit trail entry.
type ActivityResponse struct {
	ID         string                  `json:"id"`
	StaffID    string                  `json:"staff_id"`
	ChangeType domain.TicketChangeType `json:"change_type"`
	OldValue   map[string]any          `json:"old_value,omitempty"`
	NewValue   map[string]any          `json:"new_value,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}

// ApprovalResponse acknowledges a routed approval request.
type ApprovalResponse struct {
	RequestID   string    `json:"request_id"`
	TicketID    string    `json:"ticket_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// HistoricalTicketResponse is a past ticket of a unit.
type HistoricalTicketResponse struct {
	ID            string                `json:"id"`
	IssueType     string                `json:"issue_type"`
	Status        domain.TicketStatus   `json:"status"`
	DateCompleted string                `json:"date_completed"`
	StaffAssigned string                `json:"staff_assigned"`
	Priority      domain.TicketPriority `json:"priority"`
}

// UnitHistoryResponse lists a unit's past tickets with filter choices.
type UnitHistoryResponse struct {
	PropertyName string                     `json:"property_name"`
	UnitNumber   string                     `json:"unit_number"`
	IssueTypes   []string                   `json:"issue_types"`
	Tickets      []HistoricalTicketResponse `json:"tickets"`
}
