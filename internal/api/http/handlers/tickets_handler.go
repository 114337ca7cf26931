package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-desk/internal/api/dto"
	"github.com/spec-kit/maintenance-desk/internal/auth"
	"github.com/spec-kit/maintenance-desk/internal/domain"
	"github.com/spec-kit/maintenance-desk/internal/query"
	"github.com/spec-kit/maintenance-desk/internal/service"
	apperrors "github.com/spec-kit/maintenance-desk/pkg/util/errorutil"
)

// TicketsHandler serves the staff ticket queue and lifecycle actions.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ListTickets GET /tickets?view=&q=.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	view, ok := query.ParseView(c.Query("view"))
	if !ok {
		return apperrors.NewValidationError("unknown view", map[string]any{"view": c.Query("view")})
	}
	tickets, err := h.service.ListTickets(c.UserContext(), principal.StaffID, service.TicketQuery{
		View:   view,
		Search: c.Query("q"),
	})
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CountTickets GET /tickets/counts?q=.
func (h *TicketsHandler) CountTickets(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	counts, err := h.service.CountTickets(c.UserContext(), principal.StaffID, c.Query("q"))
	if err != nil {
		return err
	}
	views := make(map[string]int, len(counts.ByView))
	for view, n := range counts.ByView {
		views[string(view)] = n
	}
	return c.JSON(fiber.Map{"data": dto.TicketCountsResponse{Views: views, Unassigned: counts.Unassigned}})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListActivity GET /tickets/:id/activity.
func (h *TicketsHandler) ListActivity(c *fiber.Ctx) error {
	entries, err := h.service.ListActivity(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.ActivityResponse{
			ID:         entry.ID,
			StaffID:    entry.StaffID,
			ChangeType: entry.ChangeType,
			OldValue:   entry.OldValue,
			NewValue:   entry.NewValue,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ClaimTicket POST /tickets/:id/claim.
func (h *TicketsHandler) ClaimTicket(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.ClaimTicket(c.UserContext(), principal.StaffID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, ok := domain.ParseTicketStatus(req.Status)
	if !ok {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}
	ticket, err := h.service.UpdateStatus(c.UserContext(), principal.StaffID, c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdatePriority PATCH /tickets/:id/priority.
func (h *TicketsHandler) UpdatePriority(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	priority, ok := domain.ParseTicketPriority(req.Priority)
	if !ok {
		return apperrors.NewValidationError("unknown priority", map[string]any{"priority": req.Priority})
	}
	ticket, err := h.service.UpdatePriority(c.UserContext(), principal.StaffID, c.Params("id"), priority)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AddNote POST /tickets/:id/notes.
func (h *TicketsHandler) AddNote(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.AddNote(c.UserContext(), principal.StaffID, c.Params("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AddPhoto POST /tickets/:id/photos.
func (h *TicketsHandler) AddPhoto(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AddPhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.AddPhoto(c.UserContext(), principal.StaffID, c.Params("id"), req.Ref)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// CompleteTicket POST /tickets/:id/complete.
func (h *TicketsHandler) CompleteTicket(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.CompleteTicket(c.UserContext(), principal.StaffID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// SeekApproval POST /tickets/:id/approval.
func (h *TicketsHandler) SeekApproval(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	req, err := h.service.SeekApproval(c.UserContext(), principal.StaffID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"data": dto.ApprovalResponse{
		RequestID:   req.ID,
		TicketID:    req.TicketID,
		RequestedAt: req.RequestedAt,
	}})
}

// UnitHistory GET /units/:unit/history?property=&status=&issue_type=.
func (h *TicketsHandler) UnitHistory(c *fiber.Ctx) error {
	unit := c.Params("unit")
	property := c.Query("property")
	if property == "" {
		resolved, ok := h.service.ResolveUnitProperty(c.UserContext(), unit)
		if !ok {
			return apperrors.NewNotFound("unit", map[string]any{"unit_number": unit})
		}
		property = resolved
	}
	history, err := h.service.UnitHistory(c.UserContext(), property, unit, query.HistoryFilter{
		Status:    c.Query("status"),
		IssueType: c.Query("issue_type"),
	})
	if err != nil {
		return err
	}
	items := make([]dto.HistoricalTicketResponse, 0, len(history.Tickets))
	for _, r := range history.Tickets {
		items = append(items, dto.HistoricalTicketResponse{
			ID:            r.ID,
			IssueType:     r.IssueType,
			Status:        r.Status,
			DateCompleted: r.DateCompleted,
			StaffAssigned: r.StaffAssigned,
			Priority:      r.Priority,
		})
	}
	return c.JSON(fiber.Map{"data": dto.UnitHistoryResponse{
		PropertyName: history.PropertyName,
		UnitNumber:   history.UnitNumber,
		IssueTypes:   history.IssueTypes,
		Tickets:      items,
	}})
}

func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.StaffID == "" {
		return nil, apperrors.NewUnauthorized("session required")
	}
	return principal, nil
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:            ticket.ID,
		PropertyName:  ticket.PropertyName,
		UnitNumber:    ticket.UnitNumber,
		IssueType:     ticket.IssueType,
		Priority:      ticket.Priority,
		Status:        ticket.Status,
		CreatedDate:   ticket.CreatedDate,
		Description:   ticket.Description,
		AssignedTo:    ticket.AssignedTo,
		TenantName:    ticket.TenantName,
		TenantContact: ticket.TenantContact,
		Notes:         nonNil(ticket.Notes),
		Photos:        nonNil(ticket.Photos),
		TenantPhotos:  nonNil(ticket.TenantPhotos),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
