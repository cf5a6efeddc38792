package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"https://app.example.com"}, parseOrigins("https://app.example.com"))
	assert.Equal(t,
		[]string{"https://app.example.com", "http://localhost:3000"},
		parseOrigins(" https://app.example.com , http://localhost:3000 ,"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, getEnvInt("TEST_INT", 7))

	t.Setenv("TEST_INT", "not-a-number")
	assert.Equal(t, 7, getEnvInt("TEST_INT", 7))

	assert.Equal(t, 7, getEnvInt("TEST_INT_UNSET", 7))
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 15*time.Second, cfg.DashboardCacheTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "login:42", CacheKey.UserSessionKey(42))
	assert.Equal(t, "dashboard:metrics", CacheKey.DashboardMetricsKey())
	assert.Equal(t, "notifications:broadcast", CacheKey.NotificationChannel())
}
