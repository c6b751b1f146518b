package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_ACCESS_TTL", "90m")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg := New()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 90*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 3, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.RefreshTokenTTL)
}

func TestNew_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("QUERY_CACHE_TTL", "soon")

	cfg := New()

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 5*time.Minute, cfg.Cache.QueryTTL)
}
