package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_ADDRESS", "admin@example.com")
	t.Setenv("ADMIN_PASS", "admin-pass")
	t.Setenv("CHEF_ADDRESS", "chef@example.com")
	t.Setenv("CHEF_PASS", "chef-pass")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint(8080), cfg.Port)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, uint(5432), cfg.DBPort)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("REFRESH_TOKEN_TTL", "48h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint(9000), cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTokenTTL)
}

func TestLoad_MissingIdentity(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CHEF_PASS", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_SharedSigningSecretRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REFRESH_TOKEN_SECRET", "access-secret")

	_, err := Load()
	require.Error(t, err)
}
