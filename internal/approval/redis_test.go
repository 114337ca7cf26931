package approval

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisRouter_PushesEncodedRequest(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	router := NewRedisRouter(client, "maintenance:approvals")
	req := Request{
		ID:           "req-1",
		TicketID:     "T-2024-002",
		PropertyName: "Harbor View Complex",
		UnitNumber:   "105",
		IssueType:    "Electrical",
		RequestedBy:  "John Smith",
		RequestedAt:  time.Date(2025, 10, 9, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, router.Route(context.Background(), req))

	items, err := mr.List("maintenance:approvals")
	require.NoError(t, err)
	require.Len(t, items, 1)

	var decoded Request
	require.NoError(t, json.Unmarshal([]byte(items[0]), &decoded))
	assert.Equal(t, req, decoded)
}

func TestRedisRouter_SurfacesConnectionErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	err := NewRedisRouter(client, "k").Route(context.Background(), Request{ID: "req-1"})
	assert.Error(t, err)
}

func TestNATSRouter_RequiresConnection(t *testing.T) {
	err := NewNATSRouter(nil, "maintenance.approvals").Route(context.Background(), Request{ID: "req-1"})
	assert.Error(t, err)
}

func TestLogRouter_NeverFails(t *testing.T) {
	assert.NoError(t, NewLogRouter(zap.NewNop()).Route(context.Background(), Request{ID: "req-1"}))
}
