package dto

import (
	"time"

	"github.com/spec-kit/maintenance-desk/internal/domain"
)

// SessionResponse is returned when a session starts.
type SessionResponse struct {
	SessionID string          `json:"session_id"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Staff     ProfileResponse `json:"staff"`
}

// ProfileResponse describes the signed-in staff member.
type ProfileResponse struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	AssignedProperties []string `json:"assigned_properties"`
}

// ScreenResponse is the current navigator state.
type ScreenResponse struct {
	Screen           domain.Screen   `json:"screen"`
	ActiveTab        string          `json:"active_tab"`
	SelectedTicketID string          `json:"selected_ticket_id,omitempty"`
	HistoryUnit      string          `json:"history_unit,omitempty"`
	HistoryProperty  string          `json:"history_property,omitempty"`
	Ticket           *TicketResponse `json:"ticket,omitempty"`
}

// NavigateRequest payload.
type NavigateRequest struct {
	Screen string `json:"screen"`
	Tab    string `json:"tab"`
}

// OpenDetailsRequest payload.
type OpenDetailsRequest struct {
	TicketID string `json:"ticket_id"`
	FromTab  string `json:"from_tab"`
}

// UnitHistoryRequest payload.
type UnitHistoryRequest struct {
	UnitNumber string `json:"unit_number"`
}

// NoticeResponse is one advisory message.
type NoticeResponse struct {
	Level     domain.NoticeLevel `json:"level"`
	Text      string             `json:"text"`
	TicketID  string             `json:"ticket_id,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
