// Package approval delivers "seek approval" requests to the leasing
// office. Delivery is fire-and-forget: no reply is awaited.
package approval

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Request asks an approver to sign off on work for a ticket.
type Request struct {
	ID           string    `json:"id"`
	TicketID     string    `json:"ticket_id"`
	PropertyName string    `json:"property_name"`
	UnitNumber   string    `json:"unit_number"`
	IssueType    string    `json:"issue_type"`
	RequestedBy  string    `json:"requested_by"`
	RequestedAt  time.Time `json:"requested_at"`
}

// Router hands a request to the approval collaborator.
type Router interface {
	Route(ctx context.Context, req Request) error
}

func encode(req Request) ([]byte, error) {
	return json.Marshal(req)
}

type logRouter struct {
	logger *zap.Logger
}

// NewLogRouter only records requests in the log.
func NewLogRouter(logger *zap.Logger) Router {
	return &logRouter{logger: logger}
}

func (r *logRouter) Route(ctx context.Context, req Request) error {
	r.logger.Info("approval requested",
		zap.String("request_id", req.ID),
		zap.String("ticket_id", req.TicketID),
		zap.String("requested_by", req.RequestedBy))
	return nil
}
