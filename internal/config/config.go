package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/maintenance-desk/internal/domain"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	NATS         NATSConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Staff        StaffConfig
	Lifecycle    LifecycleConfig
	Approval     ApprovalConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	SeedDemoData          bool
}

// PostgresConfig holds DB connection values for the unit history source.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NATSConfig holds the NATS server location.
type NATSConfig struct {
	URL string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session token parameters.
type AuthConfig struct {
	JWTSecret       string
	SessionTTLHours int
}

// StaffConfig describes the operator profile of this deployment.
type StaffConfig struct {
	Name       string
	Email      string
	Phone      string
	Properties []string
}

// LifecycleConfig tunes the ticket transition policy.
type LifecycleConfig struct {
	AllowReopen bool
}

// ApprovalConfig selects where approval requests are routed.
type ApprovalConfig struct {
	Transport   string
	NATSSubject string
	RedisKey    string
}

// NotificationConfig bounds the per-staff advisory inbox.
type NotificationConfig struct {
	InboxSize int
}

// Approval transports.
const (
	ApprovalTransportLog   = "log"
	ApprovalTransportNATS  = "nats"
	ApprovalTransportRedis = "redis"
)

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	transport := strings.ToLower(getEnv("APPROVAL_TRANSPORT", ApprovalTransportLog))
	switch transport {
	case ApprovalTransportLog, ApprovalTransportNATS, ApprovalTransportRedis:
	default:
		return nil, fmt.Errorf("invalid APPROVAL_TRANSPORT %q", transport)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "maintenance-desk"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			SeedDemoData:          getEnvAsBool("APP_SEED_DEMO_DATA", true),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", "nats://127.0.0.1:4222"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("AUTH_JWT_SECRET", "dev-secret"),
			SessionTTLHours: getEnvAsInt("AUTH_SESSION_TTL_HOURS", 12),
		},
		Staff: StaffConfig{
			Name:       getEnv("STAFF_NAME", "John Smith"),
			Email:      getEnv("STAFF_EMAIL", "john.smith@dormity.com"),
			Phone:      getEnv("STAFF_PHONE", "(555) 123-4567"),
			Properties: getEnvAsList("STAFF_PROPERTIES", []string{"Sunset Apartments", "Harbor View Complex", "Oak Street Residences"}),
		},
		Lifecycle: LifecycleConfig{
			AllowReopen: getEnvAsBool("LIFECYCLE_ALLOW_REOPEN", false),
		},
		Approval: ApprovalConfig{
			Transport:   transport,
			NATSSubject: getEnv("APPROVAL_NATS_SUBJECT", "maintenance.approvals"),
			RedisKey:    getEnv("APPROVAL_REDIS_KEY", "maintenance:approvals"),
		},
		Notification: NotificationConfig{
			InboxSize: getEnvAsInt("NOTIFY_INBOX_SIZE", 50),
		},
	}

	if transport == ApprovalTransportRedis && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("APPROVAL_TRANSPORT=redis requires REDIS_ADDR")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Profile converts the configured operator into a domain profile.
func (s StaffConfig) Profile() domain.StaffProfile {
	return domain.StaffProfile{
		Name:               s.Name,
		Email:              s.Email,
		Phone:              s.Phone,
		AssignedProperties: append([]string(nil), s.Properties...),
	}
}

// SessionTTL returns how long issued session tokens stay valid.
func (a AuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLHours <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(a.SessionTTLHours) * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
