package server

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscraper/internal/core/pipeline"
	"trendscraper/internal/core/record"
	"trendscraper/internal/core/scrape"
	"trendscraper/internal/health"
	"trendscraper/internal/logger"
	"trendscraper/internal/platform/static"
)

type okCheck struct{}

func (okCheck) HealthCheck(context.Context) error { return nil }

type fixedAddress struct{}

func (fixedAddress) Lookup() string { return "203.0.113.9" }

func TestRegisterRoutes(t *testing.T) {
	cfg := pipeline.DefaultConfig("https://x.test")
	cfg.SettleDelay = 0
	store := record.NewMemoryStore()
	svc := scrape.NewService(scrape.Dependencies{
		Open:     scrape.StaticOpener(static.Snapshots{}),
		Pipeline: pipeline.New(cfg, logger.Nop("Pipeline")),
		Resolver: fixedAddress{},
		Store:    store,
	})

	app := fiber.New()
	h := RegisterRoutes(app, Dependencies{
		Scrape:       svc,
		Records:      store,
		HealthChecks: map[string]health.Checker{"redis": okCheck{}},
	})
	h.SetReady()

	tests := []struct {
		method, path string
		want         int
	}{
		{"GET", "/v1/health", 200},
		{"GET", "/api/health", 200},
		{"GET", "/v1/trends", 200},
		{"GET", "/api/stats", 200},
		{"GET", "/v1/trends/missing", 404},
		{"GET", "/v1/runs/missing", 404},
		// An unreachable snapshot page fails navigation.
		{"POST", "/v1/scrape", 502},
		{"POST", "/api/scrape?async=true", 400},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, tt.want, resp.StatusCode, "%s %s", tt.method, tt.path)
		resp.Body.Close()
	}
}
