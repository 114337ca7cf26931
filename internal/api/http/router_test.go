package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-desk/internal/api/http/handlers"
	"github.com/spec-kit/maintenance-desk/internal/approval"
	"github.com/spec-kit/maintenance-desk/internal/auth"
	"github.com/spec-kit/maintenance-desk/internal/config"
	"github.com/spec-kit/maintenance-desk/internal/domain"
	"github.com/spec-kit/maintenance-desk/internal/events"
	"github.com/spec-kit/maintenance-desk/internal/observability"
	"github.com/spec-kit/maintenance-desk/internal/persistence"
	"github.com/spec-kit/maintenance-desk/internal/repository"
	"github.com/spec-kit/maintenance-desk/internal/service"
	"github.com/spec-kit/maintenance-desk/internal/session"
)

type testServer struct {
	app   *fiber.App
	redis *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tickets := repository.NewTicketRepository(repository.DemoTickets())
	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, config.NotificationConfig{InboxSize: 20})
	notifications.RegisterHandlers()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:      tickets,
		ActivityRepo:    repository.NewTicketActivityRepository(),
		UnitHistoryRepo: repository.NewDemoUnitHistoryRepository(repository.DemoTickets()),
		Approvals:       approval.NewRedisRouter(client, "maintenance:approvals"),
		Dispatcher:      dispatcher,
	})

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	sessions := session.NewManager(tokens, tickets, ticketService, logger)
	metrics := observability.NewMetrics()
	staff := domain.StaffProfile{Name: "John Smith", Email: "john.smith@dormity.com", AssignedProperties: []string{"Sunset Apartments"}}

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health: handlers.NewHealthHandler("maintenance-desk", "test", map[string]handlers.Dependency{
			"redis":    &persistence.Redis{Client: client},
			"postgres": &persistence.Postgres{},
		}, metrics),
		Session:        handlers.NewSessionHandler(sessions, staff),
		Staff:          handlers.NewStaffHandler(staff, notifications),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, sessions),
	})
	return &testServer{app: app, redis: mr}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	status, body := s.do(t, "POST", "/session", "", "")
	require.Equal(t, fiber.StatusCreated, status)
	token, _ := body["data"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func dataMap(body map[string]any) map[string]any {
	m, _ := body["data"].(map[string]any)
	return m
}

func dataIDs(body map[string]any) []string {
	items, _ := body["data"].([]any)
	out := []string{}
	for _, item := range items {
		out = append(out, item.(map[string]any)["id"].(string))
	}
	return out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, "GET", "/health/live", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	status, body = s.do(t, "GET", "/health/ready", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "ok", deps["redis"])
	assert.Equal(t, "disabled", deps["postgres"])

	s.redis.Close()
	status, body = s.do(t, "GET", "/health/ready", "", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", errorCode(body))
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, "GET", "/tickets", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))

	token := s.login(t)
	status, _ = s.do(t, "GET", "/tickets", token, "")
	assert.Equal(t, fiber.StatusOK, status)

	status, body = s.do(t, "DELETE", "/session", token, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Logged out successfully!", dataMap(body)["message"])

	status, _ = s.do(t, "GET", "/tickets", token, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestQueueViewsAndSearch(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	_, body := s.do(t, "GET", "/tickets?view=unclaimed", token, "")
	assert.Equal(t, []string{"T-2024-001", "T-2024-003", "T-2024-005", "T-2024-007"}, dataIDs(body))

	_, body = s.do(t, "GET", "/tickets?view=all&q=sunset", token, "")
	assert.Equal(t, []string{"T-2024-001", "T-2024-004", "T-2024-007"}, dataIDs(body))

	status, body := s.do(t, "GET", "/tickets?view=closed", token, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	_, body = s.do(t, "GET", "/tickets/counts", token, "")
	counts := dataMap(body)
	assert.Equal(t, float64(4), counts["unassigned"])
	assert.Equal(t, float64(8), counts["views"].(map[string]any)["all"])
}

func TestClaimAndLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	status, body := s.do(t, "POST", "/tickets/T-2024-001/claim", token, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "In Progress", dataMap(body)["status"])
	assert.Equal(t, "John Smith", dataMap(body)["assigned_to"])

	_, body = s.do(t, "GET", "/tickets?view=mine", token, "")
	assert.Contains(t, dataIDs(body), "T-2024-001")

	status, body = s.do(t, "PATCH", "/tickets/T-2024-001/priority", token, `{"priority":"low"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Low", dataMap(body)["priority"])

	status, body = s.do(t, "POST", "/tickets/T-2024-001/notes", token, `{"text":"fixed pipe"}`)
	require.Equal(t, fiber.StatusOK, status)
	notes := dataMap(body)["notes"].([]any)
	assert.Equal(t, "fixed pipe", notes[len(notes)-1])

	status, body = s.do(t, "PATCH", "/tickets/T-2024-001/status", token, `{"status":"Open"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorCode(body))

	status, body = s.do(t, "PATCH", "/tickets/T-2024-001/status", token, `{"status":"finished"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = s.do(t, "POST", "/tickets/T-2024-001/approval", token, "")
	assert.Equal(t, fiber.StatusAccepted, status)
	queued, err := s.redis.List("maintenance:approvals")
	require.NoError(t, err)
	assert.Len(t, queued, 1)

	status, body = s.do(t, "POST", "/tickets/T-2024-001/complete", token, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Archive", dataMap(body)["status"])

	_, body = s.do(t, "GET", "/tickets/T-2024-001/activity", token, "")
	assert.Len(t, body["data"].([]any), 5)

	_, body = s.do(t, "GET", "/notices", token, "")
	texts := []string{}
	for _, n := range body["data"].([]any) {
		texts = append(texts, n.(map[string]any)["text"].(string))
	}
	assert.Equal(t, []string{
		"Ticket added to My Tickets!",
		"Priority updated to Low",
		"Note added successfully!",
		"Approval request sent to leasing agent!",
		"Status updated to Archive",
		"Ticket moved to archive!",
	}, texts)

	_, body = s.do(t, "GET", "/notices", token, "")
	assert.Empty(t, body["data"])
}

func TestMutationErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	status, body := s.do(t, "POST", "/tickets/T-9999-999/claim", token, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	status, body = s.do(t, "POST", "/tickets/T-2024-003/notes", token, `{"text":"not mine"}`)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "PERMISSION_DENIED", errorCode(body))

	status, _ = s.do(t, "PATCH", "/tickets/T-2024-002/status", token, `not json`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSessionNavigation(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	_, body := s.do(t, "GET", "/session/screen", token, "")
	assert.Equal(t, "queue", dataMap(body)["screen"])
	assert.Equal(t, "all", dataMap(body)["active_tab"])

	status, body := s.do(t, "POST", "/session/details", token, `{"ticket_id":"T-2024-003","from_tab":"unclaimed"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "details", dataMap(body)["screen"])
	assert.Equal(t, "T-2024-003", dataMap(body)["ticket"].(map[string]any)["id"])

	s.do(t, "POST", "/tickets/T-2024-003/claim", token, "")
	_, body = s.do(t, "GET", "/session/screen", token, "")
	assert.Equal(t, "In Progress", dataMap(body)["ticket"].(map[string]any)["status"])

	status, body = s.do(t, "POST", "/session/history", token, `{"unit_number":"301"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "history", dataMap(body)["screen"])
	assert.Equal(t, "Oak Street Residences", dataMap(body)["history_property"])

	_, body = s.do(t, "POST", "/session/back", token, "")
	assert.Equal(t, "details", dataMap(body)["screen"])
	_, body = s.do(t, "POST", "/session/back", token, "")
	assert.Equal(t, "queue", dataMap(body)["screen"])
	assert.Equal(t, "unclaimed", dataMap(body)["active_tab"])

	status, body = s.do(t, "POST", "/session/navigate", token, `{"screen":"history"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	_, body = s.do(t, "POST", "/session/navigate", token, `{"screen":"profile"}`)
	assert.Equal(t, "profile", dataMap(body)["screen"])

	_, body = s.do(t, "GET", "/profile", token, "")
	assert.Equal(t, "John Smith", dataMap(body)["name"])
}

func TestUnitHistory(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	status, body := s.do(t, "GET", "/units/204/history?status=Archive", token, "")
	require.Equal(t, fiber.StatusOK, status)
	data := dataMap(body)
	assert.Equal(t, "Sunset Apartments", data["property_name"])
	assert.Len(t, data["tickets"].([]any), 2)
	assert.Len(t, data["issue_types"].([]any), 4)

	status, body = s.do(t, "GET", "/units/204/history?issue_type=hvac", token, "")
	require.Equal(t, fiber.StatusOK, status)
	data = dataMap(body)
	require.Len(t, data["tickets"].([]any), 1)
	assert.Equal(t, "T-2024-008", data["tickets"].([]any)[0].(map[string]any)["id"])
	assert.Len(t, data["issue_types"].([]any), 4)

	status, _ = s.do(t, "GET", "/units/999/history", token, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	s.do(t, "GET", "/tickets/T-2024-001", token, "")

	_, body := s.do(t, "GET", "/metrics", token, "")
	requests := dataMap(body)["requests"].(map[string]any)
	assert.Contains(t, requests, "/tickets/:id|GET|200")
}
