package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ACCESSGATE_AUTH_SECRET", "test-secret")
	t.Setenv("ACCESSGATE_ADDR", "")
	t.Setenv("ACCESSGATE_PG_DSN", "")
	t.Setenv("ACCESSGATE_ISSUER", "")
	t.Setenv("ACCESSGATE_ACCESS_TTL", "")
	t.Setenv("ACCESSGATE_REFRESH_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "accessgate", cfg.Issuer)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, "test-secret", cfg.AuthSecret)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("ACCESSGATE_AUTH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESSGATE_AUTH_SECRET")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ACCESSGATE_AUTH_SECRET", "s")
	t.Setenv("ACCESSGATE_ADDR", ":9090")
	t.Setenv("ACCESSGATE_ISSUER", "accessgate-stage")
	t.Setenv("ACCESSGATE_ACCESS_TTL", "5m")
	t.Setenv("ACCESSGATE_REFRESH_TTL", "48h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "accessgate-stage", cfg.Issuer)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTTL)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("ACCESSGATE_AUTH_SECRET", "s")
	t.Setenv("ACCESSGATE_ACCESS_TTL", "soon")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("ACCESSGATE_ACCESS_TTL", "-5m")
	_, err = Load()
	require.Error(t, err)
}
