package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("APPROVAL_TRANSPORT", "")
	t.Setenv("STAFF_NAME", "")
	t.Setenv("STAFF_PROPERTIES", "")
	t.Setenv("LIFECYCLE_ALLOW_REOPEN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "John Smith", cfg.Staff.Name)
	assert.Equal(t, []string{"Sunset Apartments", "Harbor View Complex", "Oak Street Residences"}, cfg.Staff.Properties)
	assert.Equal(t, ApprovalTransportLog, cfg.Approval.Transport)
	assert.False(t, cfg.Lifecycle.AllowReopen)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("STAFF_NAME", "Mike Johnson")
	t.Setenv("STAFF_PROPERTIES", " Harbor View Complex , ,Sunset Apartments")
	t.Setenv("LIFECYCLE_ALLOW_REOPEN", "true")
	t.Setenv("APPROVAL_TRANSPORT", "NATS")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Mike Johnson", cfg.Staff.Name)
	assert.Equal(t, []string{"Harbor View Complex", "Sunset Apartments"}, cfg.Staff.Properties)
	assert.True(t, cfg.Lifecycle.AllowReopen)
	assert.Equal(t, ApprovalTransportNATS, cfg.Approval.Transport)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
}

func TestLoad_RejectsUnknownTransport(t *testing.T) {
	t.Setenv("APPROVAL_TRANSPORT", "carrier-pigeon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RedisTransportRequiresAddr(t *testing.T) {
	t.Setenv("APPROVAL_TRANSPORT", "redis")
	t.Setenv("REDIS_ADDR", "")

	_, err := Load()
	require.Error(t, err)
}
