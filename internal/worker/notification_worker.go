package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-desk/internal/domain"
	"github.com/spec-kit/maintenance-desk/internal/repository"
	"github.com/spec-kit/maintenance-desk/internal/service"
)

// StartNotificationWorker registers notification handlers and traces every
// ticket snapshot the store publishes.
func StartNotificationWorker(notificationService *service.NotificationService, tickets repository.TicketRepository, logger *zap.Logger) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if tickets == nil || logger == nil {
		return
	}
	tickets.Subscribe(func(t domain.Ticket) {
		logger.Debug("ticket snapshot published",
			zap.String("ticket_id", t.ID),
			zap.String("status", string(t.Status)),
			zap.Int("notes", len(t.Notes)),
			zap.Int("photos", len(t.Photos)))
	})
}
