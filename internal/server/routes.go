package server

import (
	"github.com/gofiber/fiber/v2"

	"trendscraper/internal/core/record"
	"trendscraper/internal/core/scrape"
	"trendscraper/internal/health"
)

type Dependencies struct {
	Scrape       *scrape.Service
	Records      record.Store
	HealthChecks map[string]health.Checker
	Production   bool
}

// RegisterRoutes mounts the API under /v1 and the unversioned /api alias.
func RegisterRoutes(app *fiber.App, d Dependencies) *health.HealthHandler {
	healthHandler := health.NewHealthHandler(d.HealthChecks)
	scrapeHandler := scrape.NewHandler(d.Scrape, d.Production)
	recordHandler := record.NewHandler(d.Records, d.Production)

	for _, prefix := range []string{"/v1", "/api"} {
		api := app.Group(prefix)
		api.Get("/health", health.HealthLimiter(), healthHandler.HandleHealth)

		api.Post("/scrape", scrapeHandler.HandleCreate)
		api.Get("/runs/:runId", scrapeHandler.HandleGetRun)

		api.Get("/trends", recordHandler.HandleList)
		api.Get("/trends/:runId", recordHandler.HandleGet)
		api.Get("/stats", recordHandler.HandleStats)
	}
	return healthHandler
}
