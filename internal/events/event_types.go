package events

import (
	"time"

	"github.com/spec-kit/maintenance-desk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketClaimed           EventType = "ticket_claimed"
	EventTicketStatusChanged     EventType = "ticket_status_changed"
	EventTicketPriorityChanged   EventType = "ticket_priority_changed"
	EventTicketNoteAdded         EventType = "ticket_note_added"
	EventTicketPhotoAdded        EventType = "ticket_photo_added"
	EventTicketApprovalRequested EventType = "ticket_approval_requested"
	EventTicketArchived          EventType = "ticket_archived"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	StaffID   string      `json:"staff_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketClaimedPayload payload.
type TicketClaimedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketPriorityChangedPayload payload.
type TicketPriorityChangedPayload struct {
	OldPriority domain.TicketPriority `json:"old_priority"`
	NewPriority domain.TicketPriority `json:"new_priority"`
}

// TicketNoteAddedPayload payload.
type TicketNoteAddedPayload struct {
	NoteIndex   int    `json:"note_index"`
	BodyPreview string `json:"body_preview"`
}

// TicketPhotoAddedPayload payload.
type TicketPhotoAddedPayload struct {
	Ref string `json:"ref"`
}

// TicketApprovalRequestedPayload payload.
type TicketApprovalRequestedPayload struct {
	RequestID string `json:"request_id"`
}
