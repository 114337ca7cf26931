package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-desk/internal/api/dto"
	"github.com/spec-kit/maintenance-desk/internal/domain"
	"github.com/spec-kit/maintenance-desk/internal/navigation"
	"github.com/spec-kit/maintenance-desk/internal/query"
	"github.com/spec-kit/maintenance-desk/internal/session"
	apperrors "github.com/spec-kit/maintenance-desk/pkg/util/errorutil"
)

// SessionHandler starts and ends sessions and drives their navigation.
type SessionHandler struct {
	sessions *session.Manager
	staff    domain.StaffProfile
}

// NewSessionHandler constructs handler for the deployment's staff member.
func NewSessionHandler(sessions *session.Manager, staff domain.StaffProfile) *SessionHandler {
	return &SessionHandler{sessions: sessions, staff: staff}
}

// Start POST /session.
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	sess, token, meta, err := h.sessions.Start(h.staff)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.SessionResponse{
		SessionID: sess.ID,
		Token:     token,
		ExpiresAt: meta.ExpiresAt,
		Staff:     profileResponse(sess.Staff),
	}})
}

// End DELETE /session.
func (h *SessionHandler) End(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.sessions.End(principal.SessionID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Logged out successfully!"}})
}

// Screen GET /session/screen.
func (h *SessionHandler) Screen(c *fiber.Ctx) error {
	sess, err := h.current(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": screenResponse(sess.Screen())})
}

// Navigate POST /session/navigate.
func (h *SessionHandler) Navigate(c *fiber.Ctx) error {
	sess, err := h.current(c)
	if err != nil {
		return err
	}
	var req dto.NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	screen, ok := navigation.ParseScreen(req.Screen)
	if !ok {
		return apperrors.NewValidationError("unknown screen", map[string]any{"screen": req.Screen})
	}
	state, err := sess.Navigate(screen, query.View(req.Tab))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": screenResponse(state)})
}

// OpenDetails POST /session/details.
func (h *SessionHandler) OpenDetails(c *fiber.Ctx) error {
	sess, err := h.current(c)
	if err != nil {
		return err
	}
	var req dto.OpenDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	state, err := h.sessions.OpenDetails(c.UserContext(), sess, req.TicketID, query.View(req.FromTab))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": screenResponse(state)})
}

// Back POST /session/back.
func (h *SessionHandler) Back(c *fiber.Ctx) error {
	sess, err := h.current(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": screenResponse(sess.Back())})
}

// ViewUnitHistory POST /session/history.
func (h *SessionHandler) ViewUnitHistory(c *fiber.Ctx) error {
	sess, err := h.current(c)
	if err != nil {
		return err
	}
	var req dto.UnitHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	state, err := h.sessions.ViewUnitHistory(c.UserContext(), sess, req.UnitNumber)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": screenResponse(state)})
}

func (h *SessionHandler) current(c *fiber.Ctx) (*session.Session, error) {
	principal, err := requirePrincipal(c)
	if err != nil {
		return nil, err
	}
	sess, err := h.sessions.Get(principal.SessionID)
	if err != nil {
		return nil, apperrors.NewUnauthorized("session ended")
	}
	return sess, nil
}

func screenResponse(s session.Screen) dto.ScreenResponse {
	resp := dto.ScreenResponse{
		Screen:           s.Screen,
		ActiveTab:        string(s.ActiveTab),
		SelectedTicketID: s.SelectedTicketID,
		HistoryUnit:      s.HistoryUnit,
		HistoryProperty:  s.HistoryProperty,
	}
	if s.Ticket != nil {
		ticket := ticketResponse(s.Ticket)
		resp.Ticket = &ticket
	}
	return resp
}

func profileResponse(p domain.StaffProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		Name:               p.Name,
		Email:              p.Email,
		Phone:              p.Phone,
		AssignedProperties: nonNil(p.AssignedProperties),
	}
}
