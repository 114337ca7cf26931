package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-desk/internal/config"
	"github.com/spec-kit/maintenance-desk/internal/domain"
	"github.com/spec-kit/maintenance-desk/internal/events"
)

// NotificationService turns domain events into advisory notices for the
// staff member who caused them.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig

	mu    sync.Mutex
	inbox map[string][]domain.Notice
	nowFn func() time.Time
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = 50
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		inbox:      make(map[string][]domain.Notice),
		nowFn:      time.Now,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketClaimed, n.handleTicketClaimed)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketPriorityChanged, n.handleTicketPriorityChanged)
	n.dispatcher.Subscribe(events.EventTicketNoteAdded, n.handleTicketNoteAdded)
	n.dispatcher.Subscribe(events.EventTicketPhotoAdded, n.handleTicketPhotoAdded)
	n.dispatcher.Subscribe(events.EventTicketApprovalRequested, n.handleTicketApprovalRequested)
	n.dispatcher.Subscribe(events.EventTicketArchived, n.handleTicketArchived)
}

// Drain returns pending notices for staffID, oldest first, and clears them.
func (n *NotificationService) Drain(staffID string) []domain.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	notices := n.inbox[staffID]
	delete(n.inbox, staffID)
	if notices == nil {
		return []domain.Notice{}
	}
	return notices
}

func (n *NotificationService) handleTicketClaimed(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketClaimed", zap.String("ticket_id", event.TicketID), zap.String("staff_id", event.StaffID))
	n.push(event, domain.NoticeSuccess, "Ticket added to My Tickets!")
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketStatusChanged", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.push(event, domain.NoticeSuccess, fmt.Sprintf("Status updated to %s", payload.NewStatus))
	return nil
}

func (n *NotificationService) handleTicketPriorityChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketPriorityChanged", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	payload, ok := event.Payload.(events.TicketPriorityChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.push(event, domain.NoticeSuccess, fmt.Sprintf("Priority updated to %s", payload.NewPriority))
	return nil
}

func (n *NotificationService) handleTicketNoteAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketNoteAdded", zap.String("ticket_id", event.TicketID))
	n.push(event, domain.NoticeSuccess, "Note added successfully!")
	return nil
}

func (n *NotificationService) handleTicketPhotoAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketPhotoAdded", zap.String("ticket_id", event.TicketID))
	n.push(event, domain.NoticeSuccess, "Photo uploaded!")
	return nil
}

func (n *NotificationService) handleTicketApprovalRequested(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketApprovalRequested", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	n.push(event, domain.NoticeSuccess, "Approval request sent to leasing agent!")
	return nil
}

func (n *NotificationService) handleTicketArchived(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketArchived", zap.String("ticket_id", event.TicketID))
	n.push(event, domain.NoticeSuccess, "Ticket moved to archive!")
	return nil
}

// push appends a notice, dropping the oldest once the inbox is full.
func (n *NotificationService) push(event events.Event, level domain.NoticeLevel, text string) {
	if event.StaffID == "" {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	notices := append(n.inbox[event.StaffID], domain.Notice{
		Level:     level,
		Text:      text,
		TicketID:  event.TicketID,
		CreatedAt: n.nowFn(),
	})
	if over := len(notices) - n.cfg.InboxSize; over > 0 {
		notices = append([]domain.Notice(nil), notices[over:]...)
	}
	n.inbox[event.StaffID] = notices
}
