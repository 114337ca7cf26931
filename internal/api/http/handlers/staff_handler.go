package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-desk/internal/api/dto"
	"github.com/spec-kit/maintenance-desk/internal/domain"
	"github.com/spec-kit/maintenance-desk/internal/service"
)

// StaffHandler exposes the signed-in staff member's profile and notices.
type StaffHandler struct {
	staff   domain.StaffProfile
	notices *service.NotificationService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staff domain.StaffProfile, notices *service.NotificationService) *StaffHandler {
	return &StaffHandler{staff: staff, notices: notices}
}

// Profile handles GET /profile.
func (h *StaffHandler) Profile(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profileResponse(h.staff)})
}

// Notices handles GET /notices. Reading clears the inbox.
func (h *StaffHandler) Notices(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	notices := h.notices.Drain(principal.StaffID)
	items := make([]dto.NoticeResponse, 0, len(notices))
	for _, n := range notices {
		items = append(items, dto.NoticeResponse{
			Level:     n.Level,
			Text:      n.Text,
			TicketID:  n.TicketID,
			CreatedAt: n.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
