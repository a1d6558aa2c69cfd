package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	assert.Equal(t, "https://x.com", cfg.SiteBaseURL)
	assert.Equal(t, DriverPlaywright, cfg.BrowserDriver)
	assert.True(t, cfg.BrowserHeadless)
	assert.True(t, cfg.StrictFinalize)
	assert.Equal(t, 5*time.Second, cfg.SettleDelay)
	assert.Equal(t, CacheRedis, cfg.CacheBackend)
	assert.Equal(t, 300*time.Second, cfg.Cooldown())
	assert.False(t, cfg.HasCredentials())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SITE_BASE_URL", "https://twitter.com/")
	t.Setenv("BROWSER_DRIVER", "STATIC")
	t.Setenv("SETTLE_DELAY", "1500")
	t.Setenv("NAV_TIMEOUT", "12s")
	t.Setenv("STRICT_FINALIZE", "false")
	t.Setenv("CACHE_BACKEND", "memcache")
	t.Setenv("MEMCACHE_ADDR", "memcache.example.com:11211")
	t.Setenv("COOLDOWN_SECONDS", "60")
	t.Setenv("X_USERNAME", "someone")
	t.Setenv("X_PASSWORD", "secret")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, "https://twitter.com", cfg.SiteBaseURL)
	assert.Equal(t, DriverStatic, cfg.BrowserDriver)
	assert.Equal(t, 1500*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 12*time.Second, cfg.NavTimeout)
	assert.False(t, cfg.StrictFinalize)
	assert.Equal(t, CacheMemcache, cfg.CacheBackend)
	assert.Equal(t, "memcache.example.com:11211", cfg.MemcacheAddr)
	assert.Equal(t, time.Minute, cfg.Cooldown())
	assert.True(t, cfg.HasCredentials())
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TASK_MAX_RETRIES", "many")
	t.Setenv("BROWSER_HEADLESS", "maybe")
	t.Setenv("SETTLE_DELAY", "soon")

	cfg := Load()

	assert.Equal(t, 3, cfg.TaskMaxRetries)
	assert.True(t, cfg.BrowserHeadless)
	assert.Equal(t, 5*time.Second, cfg.SettleDelay)
}
