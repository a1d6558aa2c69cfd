// Package egress finds the public address the scraper is browsing from.
package egress

import (
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"trendscraper/internal/logger"
)

// FallbackAddress is recorded when every lookup service fails.
const FallbackAddress = "192.168.1.100"

var DefaultServices = []string{
	"https://api.ipify.org?format=json",
	"https://ipapi.co/json/",
	"https://api.myip.com",
}

// getFunc performs a GET and returns the status and body.
type getFunc func(url string, timeout time.Duration) (int, []byte, error)

type Resolver struct {
	log      *logger.Logger
	services []string
	timeout  time.Duration
	get      getFunc
}

func NewResolver() *Resolver {
	return &Resolver{
		log:      logger.New("Egress"),
		services: DefaultServices,
		timeout:  5 * time.Second,
		get:      fiberGet,
	}
}

// Lookup tries each service in order and never fails.
func (r *Resolver) Lookup() string {
	for _, svc := range r.services {
		code, body, err := r.get(svc, r.timeout)
		if err != nil {
			r.log.LogDebugf("address lookup via %s failed: %v", svc, err)
			continue
		}
		if code < 200 || code >= 300 {
			r.log.LogDebugf("address lookup via %s returned %d", svc, code)
			continue
		}
		if ip := parseAddress(body); ip != "" {
			return ip
		}
	}
	r.log.LogWarnf("all address lookups failed, using %s", FallbackAddress)
	return FallbackAddress
}

// parseAddress reads {"ip":..}, {"query":..} or a bare address.
func parseAddress(body []byte) string {
	var payload struct {
		IP    string `json:"ip"`
		Query string `json:"query"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.IP != "" {
			return payload.IP
		}
		if payload.Query != "" {
			return payload.Query
		}
	}
	plain := strings.TrimSpace(string(body))
	if net.ParseIP(plain) != nil {
		return plain
	}
	return ""
}

func fiberGet(url string, timeout time.Duration) (int, []byte, error) {
	agent := fiber.Get(url).Timeout(timeout)
	if err := agent.Parse(); err != nil {
		return 0, nil, err
	}
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return code, nil, fmt.Errorf("get %s: %w", url, errs[0])
	}
	return code, body, nil
}
