package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Browser drivers.
const (
	DriverPlaywright = "playwright"
	DriverStatic     = "static"
)

// Cache backends for the cooldown marker.
const (
	CacheRedis    = "redis"
	CacheMemcache = "memcache"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	RedisAddr     string
	RedisPassword string
	DataDir       string

	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string

	TaskMaxRetries int
	ScrapeCron     string

	XUsername string
	XPassword string
	XEmail    string

	SiteBaseURL     string
	BrowserDriver   string
	BrowserHeadless bool
	SettleDelay     time.Duration
	NavTimeout      time.Duration
	StrategiesFile  string
	StrictFinalize  bool

	CacheBackend    string
	MemcacheAddr    string
	CooldownSeconds int

	CaptureFallbackSnapshots bool
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getenvDuration accepts Go durations ("5s") or a bare number of milliseconds.
func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return def
}

func Load() Config {
	cfg := Config{
		AppEnv:        getenv("APP_ENV", "development"),
		HTTPAddr:      getenv("HTTP_ADDR", ":8081"),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DataDir:       getenv("DATA_DIR", "./data"),

		SupabaseURL:        os.Getenv("NEXT_PUBLIC_SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseBucket:     getenv("SUPABASE_STORAGE_BUCKET", "snapshots"),

		TaskMaxRetries: getenvInt("TASK_MAX_RETRIES", 3),
		ScrapeCron:     os.Getenv("SCRAPE_CRON"),

		XUsername: os.Getenv("X_USERNAME"),
		XPassword: os.Getenv("X_PASSWORD"),
		XEmail:    os.Getenv("X_EMAIL"),

		SiteBaseURL:     strings.TrimRight(getenv("SITE_BASE_URL", "https://x.com"), "/"),
		BrowserDriver:   strings.ToLower(getenv("BROWSER_DRIVER", DriverPlaywright)),
		BrowserHeadless: getenvBool("BROWSER_HEADLESS", true),
		SettleDelay:     getenvDuration("SETTLE_DELAY", 5*time.Second),
		NavTimeout:      getenvDuration("NAV_TIMEOUT", 30*time.Second),
		StrategiesFile:  os.Getenv("STRATEGIES_FILE"),
		StrictFinalize:  getenvBool("STRICT_FINALIZE", true),

		CacheBackend:    strings.ToLower(getenv("CACHE_BACKEND", CacheRedis)),
		MemcacheAddr:    getenv("MEMCACHE_ADDR", "localhost:11211"),
		CooldownSeconds: getenvInt("COOLDOWN_SECONDS", 300),

		CaptureFallbackSnapshots: getenvBool("CAPTURE_FALLBACK_SNAPSHOTS", false),
	}
	if cfg.RedisAddr == "" {
		panic(fmt.Errorf("REDIS_ADDR is required"))
	}
	return cfg
}

// HasCredentials reports whether a login can be attempted.
func (c Config) HasCredentials() bool {
	return c.XUsername != "" && c.XPassword != ""
}

func (c Config) IsProduction() bool { return c.AppEnv == "production" }

func (c Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}
