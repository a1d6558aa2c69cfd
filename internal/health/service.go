package health

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"trendscraper/internal/logger"
)

// Checker reports the health of one dependency.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	log       *logger.Logger
	checks    map[string]Checker
	startTime time.Time

	mu    sync.RWMutex
	ready bool
}

func NewHealthHandler(checks map[string]Checker) *HealthHandler {
	return &HealthHandler{
		log:       logger.New("HealthCheck"),
		checks:    checks,
		startTime: time.Now(),
	}
}

// SetReady marks the application as ready to receive traffic.
func (h *HealthHandler) SetReady() {
	h.mu.Lock()
	h.ready = true
	h.mu.Unlock()
	h.log.LogSuccessf("ready for traffic after %v", time.Since(h.startTime).Round(time.Millisecond))
}

func (h *HealthHandler) isReady() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ready
}

type ComponentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type OverallHealth struct {
	OverallStatus string                     `json:"overall_status"`
	Timestamp     string                     `json:"timestamp"`
	Ready         bool                       `json:"ready"`
	UptimeSeconds int64                      `json:"uptime_seconds"`
	Components    map[string]ComponentStatus `json:"components"`
}

// HandleHealth is 200 only when the app is ready and every dependency is up.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	statuses := h.check(ctx)
	allOk := true
	for _, s := range statuses {
		if s.Status != "ok" {
			allOk = false
		}
	}

	resp := OverallHealth{
		Timestamp:     time.Now().UTC().Format(time.RFC3339Nano),
		Ready:         h.isReady(),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Components:    statuses,
	}
	switch {
	case !resp.Ready:
		resp.OverallStatus = "starting"
		return c.Status(http.StatusServiceUnavailable).JSON(resp)
	case !allOk:
		resp.OverallStatus = "error"
		h.log.LogWarnf("health check failed: %+v", statuses)
		return c.Status(http.StatusServiceUnavailable).JSON(resp)
	default:
		resp.OverallStatus = "ok"
		return c.Status(http.StatusOK).JSON(resp)
	}
}

func (h *HealthHandler) check(ctx context.Context) map[string]ComponentStatus {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		out = make(map[string]ComponentStatus, len(names))
	)
	for _, name := range names {
		wg.Add(1)
		go func(name string, c Checker) {
			defer wg.Done()
			st := ComponentStatus{Status: "ok"}
			if err := c.HealthCheck(ctx); err != nil {
				st = ComponentStatus{Status: "error", Error: err.Error()}
				h.log.LogErrorf("health check failed for %s: %v", name, err)
			}
			mu.Lock()
			out[name] = st
			mu.Unlock()
		}(name, h.checks[name])
	}
	wg.Wait()
	return out
}

func HealthLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"success": false, "error": "Rate limit exceeded"})
		},
	})
}
