package domain

import "strings"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusComplete   TicketStatus = "Complete"
	TicketStatusArchive    TicketStatus = "Archive"
)

// TicketPriority enumerates repair urgency.
type TicketPriority string

const (
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityLow    TicketPriority = "Low"
)

// Ticket is a unit-level maintenance request.
type Ticket struct {
	ID            string
	PropertyName  string
	UnitNumber    string
	IssueType     string
	Priority      TicketPriority
	Status        TicketStatus
	CreatedDate   string
	Description   string
	AssignedTo    *string
	TenantName    *string
	TenantContact *string
	Notes         []string
	Photos        []string
	TenantPhotos  []string
}

// IsAssigned reports whether any staff member has claimed the ticket.
func (t *Ticket) IsAssigned() bool {
	return t.AssignedTo != nil && *t.AssignedTo != ""
}

// IsAssignedTo reports whether staffID owns the ticket.
func (t *Ticket) IsAssignedTo(staffID string) bool {
	return t.IsAssigned() && *t.AssignedTo == staffID
}

// Clone returns a deep copy so callers never share slices with the store.
func (t Ticket) Clone() Ticket {
	out := t
	out.AssignedTo = cloneString(t.AssignedTo)
	out.TenantName = cloneString(t.TenantName)
	out.TenantContact = cloneString(t.TenantContact)
	out.Notes = append([]string{}, t.Notes...)
	out.Photos = append([]string{}, t.Photos...)
	out.TenantPhotos = append([]string{}, t.TenantPhotos...)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

var statusOrder = map[TicketStatus]int{
	TicketStatusOpen:       0,
	TicketStatusInProgress: 1,
	TicketStatusComplete:   2,
	TicketStatusArchive:    3,
}

// Rank orders statuses along the lifecycle. Unknown statuses rank -1.
func (s TicketStatus) Rank() int {
	if r, ok := statusOrder[s]; ok {
		return r
	}
	return -1
}

// Valid reports whether s is a known status.
func (s TicketStatus) Valid() bool {
	return s.Rank() >= 0
}

// ParseTicketStatus accepts the display form case-insensitively plus the
// snake-case form used in query strings (in_progress).
func ParseTicketStatus(raw string) (TicketStatus, bool) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for status := range statusOrder {
		if strings.ToLower(string(status)) == norm {
			return status, true
		}
	}
	return "", false
}

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityHigh, TicketPriorityMedium, TicketPriorityLow:
		return true
	}
	return false
}

// ParseTicketPriority accepts priorities case-insensitively.
func ParseTicketPriority(raw string) (TicketPriority, bool) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range []TicketPriority{TicketPriorityHigh, TicketPriorityMedium, TicketPriorityLow} {
		if strings.ToLower(string(p)) == norm {
			return p, true
		}
	}
	return "", false
}
