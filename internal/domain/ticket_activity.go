package domain

import "time"

// TicketChangeType captures what changed in an activity entry.
type TicketChangeType string

const (
	ChangeTypeClaim             TicketChangeType = "CLAIM"
	ChangeTypeStatus            TicketChangeType = "STATUS_CHANGE"
	ChangeTypePriority          TicketChangeType = "PRIORITY_CHANGE"
	ChangeTypeNote              TicketChangeType = "NOTE_ADDED"
	ChangeTypePhoto             TicketChangeType = "PHOTO_ADDED"
	ChangeTypeApprovalRequested TicketChangeType = "APPROVAL_REQUESTED"
)

// TicketActivity is an immutable audit trail entry.
type TicketActivity struct {
	ID         string
	TicketID   string
	StaffID    string
	ChangeType TicketChangeType
	OldValue   map[string]any
	NewValue   map[string]any
	CreatedAt  time.Time
}
