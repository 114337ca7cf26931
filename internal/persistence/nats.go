package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-desk/internal/config"
)

// NATS wraps a NATS connection.
type NATS struct {
	Conn *nats.Conn
}

// NewNATS connects to the configured server.
func NewNATS(cfg config.NATSConfig, logger *zap.Logger) (*NATS, error) {
	conn, err := nats.Connect(cfg.URL, nats.Name("maintenance-desk"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("connected to nats", zap.String("url", conn.ConnectedUrl()))
	return &NATS{Conn: conn}, nil
}

// Enabled reports whether a connection was opened.
func (n *NATS) Enabled() bool {
	return n != nil && n.Conn != nil
}

// Ping round-trips to the server.
func (n *NATS) Ping(ctx context.Context) error {
	if !n.Enabled() {
		return errors.New("nats not configured")
	}
	if !n.Conn.IsConnected() {
		return errors.New("nats disconnected")
	}
	return n.Conn.FlushWithContext(ctx)
}

// Close drains and closes the connection.
func (n *NATS) Close() {
	if n.Enabled() {
		_ = n.Conn.Drain()
	}
}
