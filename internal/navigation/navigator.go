// Package navigation tracks which screen a session presents and the
// context carried between screens.
package navigation

import (
	"context"
	"strings"

	"github.com/spec-kit/maintenance-desk/internal/domain"
	"github.com/spec-kit/maintenance-desk/internal/query"
	apperrors "github.com/spec-kit/maintenance-desk/pkg/util/errorutil"
)

// UnitResolver finds the property that owns a unit in the live tickets.
type UnitResolver interface {
	ResolveUnitProperty(ctx context.Context, unitNumber string) (string, bool)
}

// State is a snapshot of the navigator.
type State struct {
	Screen           domain.Screen `json:"screen"`
	ActiveTab        query.View    `json:"active_tab"`
	SelectedTicketID string        `json:"selected_ticket_id,omitempty"`
	HistoryUnit      string        `json:"history_unit,omitempty"`
	HistoryProperty  string        `json:"history_property,omitempty"`
}

// Navigator is a single-active-screen state machine. It is not safe for
// concurrent use; callers serialize access.
type Navigator struct {
	units UnitResolver
	state State
}

// New returns a navigator on the queue screen with the "all" tab.
func New(units UnitResolver) *Navigator {
	return &Navigator{
		units: units,
		state: State{Screen: domain.ScreenQueue, ActiveTab: query.ViewAll},
	}
}

// State returns the current state.
func (n *Navigator) State() State {
	return n.state
}

// OpenDetails presents ticketID and remembers fromTab for Back. Details
// are opened from the queue only.
func (n *Navigator) OpenDetails(ticketID string, fromTab query.View) error {
	if n.state.Screen != domain.ScreenQueue {
		return apperrors.NewValidationError("ticket details are reachable from the queue only", map[string]any{
			"screen": n.state.Screen,
		})
	}
	ticketID = strings.TrimSpace(ticketID)
	if ticketID == "" {
		return apperrors.NewValidationError("ticket_id is required", nil)
	}
	if fromTab == "" {
		fromTab = n.state.ActiveTab
	}
	tab, ok := query.ParseView(string(fromTab))
	if !ok {
		return apperrors.NewValidationError("unknown tab", map[string]any{"tab": fromTab})
	}
	n.state = State{
		Screen:           domain.ScreenDetails,
		ActiveTab:        tab,
		SelectedTicketID: ticketID,
	}
	return nil
}

// ViewUnitHistory moves from details to the unit history screen. It does
// nothing when no live ticket carries unitNumber.
func (n *Navigator) ViewUnitHistory(ctx context.Context, unitNumber string) error {
	if n.state.Screen != domain.ScreenDetails {
		return apperrors.NewValidationError("unit history is reachable from ticket details only", map[string]any{
			"screen": n.state.Screen,
		})
	}
	unitNumber = strings.TrimSpace(unitNumber)
	if unitNumber == "" || n.units == nil {
		return nil
	}
	property, ok := n.units.ResolveUnitProperty(ctx, unitNumber)
	if !ok {
		return nil
	}
	n.state.Screen = domain.ScreenHistory
	n.state.HistoryUnit = unitNumber
	n.state.HistoryProperty = property
	return nil
}

// Back goes one level up: history to details, anything else to the queue.
func (n *Navigator) Back() {
	switch n.state.Screen {
	case domain.ScreenHistory:
		n.state.Screen = domain.ScreenDetails
		n.state.HistoryUnit = ""
		n.state.HistoryProperty = ""
	default:
		n.toQueue(domain.ScreenQueue)
	}
}

// Navigate jumps directly to the queue or profile screen, dropping the
// selected ticket and history target. The active tab survives.
func (n *Navigator) Navigate(screen domain.Screen) error {
	switch screen {
	case domain.ScreenQueue, domain.ScreenProfile:
		n.toQueue(screen)
		return nil
	default:
		return apperrors.NewValidationError("screen cannot be opened directly", map[string]any{"screen": screen})
	}
}

// SelectTab switches the queue tab.
func (n *Navigator) SelectTab(tab query.View) error {
	view, ok := query.ParseView(string(tab))
	if !ok {
		return apperrors.NewValidationError("unknown tab", map[string]any{"tab": tab})
	}
	n.state.ActiveTab = view
	return nil
}

func (n *Navigator) toQueue(screen domain.Screen) {
	n.state = State{Screen: screen, ActiveTab: n.state.ActiveTab}
}

// ParseScreen maps user input to a Screen.
func ParseScreen(raw string) (domain.Screen, bool) {
	switch domain.Screen(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.ScreenQueue:
		return domain.ScreenQueue, true
	case domain.ScreenDetails:
		return domain.ScreenDetails, true
	case domain.ScreenHistory:
		return domain.ScreenHistory, true
	case domain.ScreenProfile:
		return domain.ScreenProfile, true
	default:
		return "", false
	}
}
