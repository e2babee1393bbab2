package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("TOKEN_SECRET", "secret")
	t.Setenv("STATION_API_URL", "http://station.local/api")
}

func TestNewAppliesDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, "prod", cfg.HTTP.Env)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.StationAPI.Retries)
	assert.Equal(t, time.Duration(0), cfg.StationAPI.Timeout)
	assert.Equal(t, time.Hour, cfg.Countries.CacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Empty(t, cfg.Notify.WebhookURL)
}

func TestNewReadsOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("STATION_API_RETRIES", "0")
	t.Setenv("FORM_SESSION_TTL", "5m")
	t.Setenv("REDIS_DB", "2")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.StationAPI.Retries)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestNewRejectsMalformedValues(t *testing.T) {
	setRequired(t)
	t.Setenv("COUNTRIES_CACHE_TTL", "forever")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COUNTRIES_CACHE_TTL")
}

func TestNewRequiresSecretAndAPI(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("STATION_API_URL", "http://station.local")

	_, err := New()
	assert.EqualError(t, err, "TOKEN_SECRET is required")

	t.Setenv("TOKEN_SECRET", "secret")
	t.Setenv("STATION_API_URL", "")
	_, err = New()
	assert.EqualError(t, err, "STATION_API_URL is required")
}
