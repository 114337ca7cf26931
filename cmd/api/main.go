package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/maintenance-desk/internal/api/http"
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
	"github.com/spec-kit/maintenance-desk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var nc *persistence.NATS
	if cfg.Approval.Transport == config.ApprovalTransportNATS {
		nc, err = persistence.NewNATS(cfg.NATS, logger)
		if err != nil {
			logger.Fatal("failed to connect nats", zap.Error(err))
		}
		defer nc.Close()
	}

	var seed []domain.Ticket
	if cfg.App.SeedDemoData {
		seed = repository.DemoTickets()
	}
	ticketRepo := repository.NewTicketRepository(seed)
	activityRepo := repository.NewTicketActivityRepository()

	var historyRepo repository.UnitHistoryRepository
	if pg.Enabled() {
		historyRepo = repository.NewUnitHistoryRepository(pg.PoolHandle())
	} else {
		historyRepo = repository.NewDemoUnitHistoryRepository(seed)
	}

	approvals, err := newApprovalRouter(cfg.Approval, redis, nc, logger)
	if err != nil {
		logger.Fatal("failed to build approval router", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, ticketRepo, logger)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:      ticketRepo,
		ActivityRepo:    activityRepo,
		UnitHistoryRepo: historyRepo,
		Approvals:       approvals,
		Dispatcher:      dispatcher,
		Policy:          service.LifecyclePolicy{AllowReopen: cfg.Lifecycle.AllowReopen},
	})

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	sessions := session.NewManager(tokens, ticketRepo, ticketService, logger)
	authMiddleware := auth.NewAuthMiddleware(tokens, sessions)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	staff := cfg.Staff.Profile()
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Dependency{
			"postgres": pg,
			"redis":    redis,
			"nats":     nc,
		}, metrics),
		Session:        handlers.NewSessionHandler(sessions, staff),
		Staff:          handlers.NewStaffHandler(staff, notificationService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func newApprovalRouter(cfg config.ApprovalConfig, redis *persistence.Redis, nc *persistence.NATS, logger *zap.Logger) (approval.Router, error) {
	switch cfg.Transport {
	case config.ApprovalTransportNATS:
		if !nc.Enabled() {
			return nil, errors.New("nats transport selected without a connection")
		}
		return approval.NewNATSRouter(nc.Conn, cfg.NATSSubject), nil
	case config.ApprovalTransportRedis:
		if !redis.Enabled() {
			return nil, errors.New("redis transport selected without REDIS_ADDR")
		}
		return approval.NewRedisRouter(redis.Client, cfg.RedisKey), nil
	default:
		return approval.NewLogRouter(logger), nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
