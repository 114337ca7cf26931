package approval

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

type natsRouter struct {
	conn    *nats.Conn
	subject string
}

// NewNATSRouter publishes requests on subject.
func NewNATSRouter(conn *nats.Conn, subject string) Router {
	return &natsRouter{conn: conn, subject: subject}
}

func (r *natsRouter) Route(ctx context.Context, req Request) error {
	if r.conn == nil {
		return fmt.Errorf("nats connection not configured")
	}
	msg, err := encode(req)
	if err != nil {
		return fmt.Errorf("encode approval request: %w", err)
	}
	if err := r.conn.Publish(r.subject, msg); err != nil {
		return fmt.Errorf("publish approval request: %w", err)
	}
	return nil
}
