package approval

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisRouter struct {
	client *redis.Client
	key    string
}

// NewRedisRouter pushes requests onto the head of the list at key; an
// approver pops from the tail.
func NewRedisRouter(client *redis.Client, key string) Router {
	return &redisRouter{client: client, key: key}
}

func (r *redisRouter) Route(ctx context.Context, req Request) error {
	if r.client == nil {
		return fmt.Errorf("redis client not configured")
	}
	msg, err := encode(req)
	if err != nil {
		return fmt.Errorf("encode approval request: %w", err)
	}
	if err := r.client.LPush(ctx, r.key, msg).Err(); err != nil {
		return fmt.Errorf("push approval request: %w", err)
	}
	return nil
}
