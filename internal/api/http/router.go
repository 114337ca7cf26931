package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-desk/internal/api/http/handlers"
	"github.com/spec-kit/maintenance-desk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Session        *handlers.SessionHandler
	Staff          *handlers.StaffHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/session", cfg.Session.Start)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/metrics", cfg.Health.Metrics)

	protected.Delete("/session", cfg.Session.End)
	protected.Get("/session/screen", cfg.Session.Screen)
	protected.Post("/session/navigate", cfg.Session.Navigate)
	protected.Post("/session/details", cfg.Session.OpenDetails)
	protected.Post("/session/back", cfg.Session.Back)
	protected.Post("/session/history", cfg.Session.ViewUnitHistory)

	protected.Get("/profile", cfg.Staff.Profile)
	protected.Get("/notices", cfg.Staff.Notices)

	tickets := protected.Group("/tickets")
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/counts", cfg.Tickets.CountTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Get("/:id/activity", cfg.Tickets.ListActivity)
	tickets.Post("/:id/claim", cfg.Tickets.ClaimTicket)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Patch("/:id/priority", cfg.Tickets.UpdatePriority)
	tickets.Post("/:id/notes", cfg.Tickets.AddNote)
	tickets.Post("/:id/photos", cfg.Tickets.AddPhoto)
	tickets.Post("/:id/complete", cfg.Tickets.CompleteTicket)
	tickets.Post("/:id/approval", cfg.Tickets.SeekApproval)

	protected.Get("/units/:unit/history", cfg.Tickets.UnitHistory)
}
