// Package query derives queue views from a ticket snapshot. Every function
// is pure and keeps the input order.
package query

import (
	"strings"

	"github.com/spec-kit/maintenance-desk/internal/domain"
)

// View selects a queue tab.
type View string

const (
	ViewAll       View = "all"
	ViewUnclaimed View = "unclaimed"
	ViewMine      View = "mine"
	ViewActive    View = "active"
	ViewComplete  View = "complete"
	ViewArchive   View = "archive"
)

// Views lists the tabs in display order.
var Views = []View{ViewAll, ViewUnclaimed, ViewMine, ViewActive, ViewComplete, ViewArchive}

// ParseView accepts a tab name case-insensitively; "mytickets" is an alias
// of mine. An empty name selects all.
func ParseView(raw string) (View, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	switch name {
	case "":
		return ViewAll, true
	case "mytickets", "my-tickets":
		return ViewMine, true
	}
	for _, v := range Views {
		if string(v) == name {
			return v, true
		}
	}
	return "", false
}

// Matches reports whether ticket belongs to view for staffID. Unknown views
// match everything.
func Matches(ticket *domain.Ticket, view View, staffID string) bool {
	switch view {
	case ViewUnclaimed:
		return !ticket.IsAssigned() && ticket.Status == domain.TicketStatusOpen
	case ViewMine:
		return ticket.IsAssignedTo(staffID)
	case ViewActive:
		return ticket.Status == domain.TicketStatusInProgress
	case ViewComplete:
		return ticket.Status == domain.TicketStatusComplete
	case ViewArchive:
		return ticket.Status == domain.TicketStatusArchive
	default:
		return true
	}
}

// MatchesSearch is a case-insensitive substring match on property name,
// id and issue type. A blank search matches everything; otherwise the text
// is matched as given, surrounding spaces included.
func MatchesSearch(ticket *domain.Ticket, search string) bool {
	if strings.TrimSpace(search) == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(ticket.PropertyName), needle) ||
		strings.Contains(strings.ToLower(ticket.ID), needle) ||
		strings.Contains(strings.ToLower(ticket.IssueType), needle)
}

// Filter returns the tickets of view that match search, in input order.
func Filter(tickets []domain.Ticket, view View, search, staffID string) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for i := range tickets {
		if !Matches(&tickets[i], view, staffID) {
			continue
		}
		if !MatchesSearch(&tickets[i], search) {
			continue
		}
		out = append(out, tickets[i])
	}
	return out
}

// Counts holds tab sizes for the queue header.
type Counts struct {
	ByView map[View]int
	// Unassigned counts tickets without an assignee regardless of status;
	// it feeds the navigation badge.
	Unassigned int
}

// Count computes the size of every tab after applying search.
func Count(tickets []domain.Ticket, search, staffID string) Counts {
	counts := Counts{ByView: make(map[View]int, len(Views))}
	for _, v := range Views {
		counts.ByView[v] = 0
	}
	for i := range tickets {
		if !tickets[i].IsAssigned() {
			counts.Unassigned++
		}
		if !MatchesSearch(&tickets[i], search) {
			continue
		}
		for _, v := range Views {
			if Matches(&tickets[i], v, staffID) {
				counts.ByView[v]++
			}
		}
	}
	return counts
}
