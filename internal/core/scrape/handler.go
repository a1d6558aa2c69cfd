package scrape

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"trendscraper/internal/logger"
	"trendscraper/internal/utils/parser"
	"trendscraper/internal/utils/response"
)

type RunParams struct {
	Async bool `form:"async"`
}

type RunData struct {
	RunID       string    `json:"runId"`
	Trends      []string  `json:"trends"`
	IPAddress   string    `json:"ipAddress"`
	CreatedAt   time.Time `json:"createdAt"`
	SnapshotURL string    `json:"snapshotUrl,omitempty"`
}

type RunResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Data    RunData `json:"data"`
}

type AcceptedResponse struct {
	Success bool   `json:"success"`
	RunID   string `json:"runId"`
	Status  string `json:"status"`
}

type Handler struct {
	log        *logger.Logger
	service    *Service
	production bool
}

func NewHandler(service *Service, production bool) *Handler {
	return &Handler{log: logger.New("ScrapeHandler"), service: service, production: production}
}

// HandleCreate runs a scrape, or queues one when async=true.
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var p RunParams
	if err := parser.ParseQuery(c, &p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.ErrorBody{Error: "invalid query", Details: err.Error()})
	}

	if p.Async {
		runID, err := h.service.Enqueue(c.Context())
		if err != nil {
			h.log.LogErrorf("enqueue run: %v", err)
			return response.Error(c, err, h.production)
		}
		return c.Status(fiber.StatusAccepted).JSON(AcceptedResponse{Success: true, RunID: runID, Status: "pending"})
	}

	out, err := h.service.Run(c.Context())
	if err != nil {
		h.log.LogErrorf("run failed: %v", err)
		return response.Error(c, err, h.production)
	}
	msg := "trends scraped"
	if out.Result.UsedFallback() {
		msg = "trends scraped with fallback entries"
	}
	return c.Status(fiber.StatusCreated).JSON(RunResponse{
		Success: true,
		Message: msg,
		Data: RunData{
			RunID:       out.Record.RunID,
			Trends:      out.Record.Trends,
			IPAddress:   out.Record.IPAddress,
			CreatedAt:   out.Record.CreatedAt,
			SnapshotURL: out.SnapshotURL,
		},
	})
}

func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	j, err := h.service.RunStatus(c.Context(), c.Params("runId"))
	if err != nil {
		return response.Error(c, err, h.production)
	}
	return c.JSON(fiber.Map{"success": true, "data": j})
}
