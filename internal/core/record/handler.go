package record

import (
	"github.com/gofiber/fiber/v2"

	"trendscraper/internal/logger"
	"trendscraper/internal/utils/parser"
	"trendscraper/internal/utils/response"
)

const (
	defaultLimit = 5
	maxLimit     = 20
)

type ListParams struct {
	Limit *int `form:"limit"`
}

// limit applies the list bounds: default when unset or below one, capped at maxLimit.
func (p ListParams) limit() int {
	if p.Limit == nil || *p.Limit < 1 {
		return defaultLimit
	}
	return min(*p.Limit, maxLimit)
}

type ListResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Data    []RunRecord `json:"data"`
}

type GetResponse struct {
	Success bool      `json:"success"`
	Data    RunRecord `json:"data"`
}

type StatsResponse struct {
	Success bool  `json:"success"`
	Data    Stats `json:"data"`
}

type Handler struct {
	log        *logger.Logger
	store      Store
	production bool
}

func NewHandler(store Store, production bool) *Handler {
	return &Handler{log: logger.New("RecordHandler"), store: store, production: production}
}

func (h *Handler) HandleList(c *fiber.Ctx) error {
	var p ListParams
	if err := parser.ParseQuery(c, &p); err != nil {
		// Unparseable limits fall back to the default.
		p = ListParams{}
	}
	recs, err := h.store.Latest(c.Context(), p.limit())
	if err != nil {
		h.log.LogErrorf("list runs: %v", err)
		return response.Error(c, err, h.production)
	}
	if recs == nil {
		recs = []RunRecord{}
	}
	return c.JSON(ListResponse{Success: true, Count: len(recs), Data: recs})
}

func (h *Handler) HandleGet(c *fiber.Ctx) error {
	rec, err := h.store.Get(c.Context(), c.Params("runId"))
	if err != nil {
		return response.Error(c, err, h.production)
	}
	return c.JSON(GetResponse{Success: true, Data: *rec})
}

func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.store.Stats(c.Context())
	if err != nil {
		h.log.LogErrorf("stats: %v", err)
		return response.Error(c, err, h.production)
	}
	return c.JSON(StatsResponse{Success: true, Data: stats})
}
