package pipeline

import (
	"strings"
	"time"

	"trendscraper/internal/core/extract"
)

// DefaultFallback is returned, in this order, when nothing valid is found.
var DefaultFallback = []string{"#Technology", "#AI", "#JavaScript", "#WebDevelopment", "#Programming"}

// Surfaces are the pages visited in order.
type Surfaces struct {
	Primary   string
	Secondary string
	Tertiary  string
}

// Config is fixed when a Pipeline is built.
type Config struct {
	Surfaces    Surfaces
	SettleDelay time.Duration

	// Fewer candidates than this after a surface moves on to the next surface.
	MinCandidates int
	// Exact length of every result; also the threshold for the link scan.
	ResultSize int
	// Running cap on the pool accumulated across surfaces.
	PoolCap int
	// Per-extraction targets, relaxed above ResultSize before finalizing.
	SurfaceTarget int
	LinkTarget    int

	// Strict also applies the actual-trend filter when finalizing.
	Strict bool

	Fallback   []string
	Strategies extract.Strategies
}

// DefaultConfig builds the surface URLs from the site base URL.
func DefaultConfig(baseURL string) Config {
	base := strings.TrimRight(baseURL, "/")
	return Config{
		Surfaces: Surfaces{
			Primary:   base + "/explore",
			Secondary: base + "/home",
			Tertiary:  base + "/explore/tabs/trending",
		},
		SettleDelay:   5 * time.Second,
		MinCandidates: 3,
		ResultSize:    5,
		PoolCap:       20,
		SurfaceTarget: 10,
		LinkTarget:    10,
		Strict:        true,
		Fallback:      append([]string(nil), DefaultFallback...),
		Strategies:    extract.DefaultStrategies(),
	}
}

// withDefaults fills zero values and copies slices so the caller cannot
// change a running pipeline.
func (c Config) withDefaults() Config {
	d := DefaultConfig("")
	if c.MinCandidates <= 0 {
		c.MinCandidates = d.MinCandidates
	}
	if c.ResultSize <= 0 {
		c.ResultSize = d.ResultSize
	}
	if c.PoolCap < c.ResultSize {
		c.PoolCap = max(d.PoolCap, c.ResultSize)
	}
	if c.SurfaceTarget <= 0 {
		c.SurfaceTarget = d.SurfaceTarget
	}
	if c.LinkTarget <= 0 {
		c.LinkTarget = d.LinkTarget
	}
	if c.SettleDelay < 0 {
		c.SettleDelay = 0
	}
	if !usableFallback(c.Fallback, c.ResultSize) {
		c.Fallback = d.Fallback
	}
	c.Fallback = append([]string(nil), c.Fallback...)
	if len(c.Strategies.Surface) == 0 {
		c.Strategies.Surface = d.Strategies.Surface
	}
	if len(c.Strategies.Links) == 0 {
		c.Strategies.Links = d.Strategies.Links
	}
	c.Strategies.Surface = c.Strategies.Surface.Ordered()
	c.Strategies.Links = c.Strategies.Links.Ordered()
	return c
}

// usableFallback requires enough distinct non-empty entries to fill a result.
func usableFallback(fallback []string, size int) bool {
	seen := map[string]struct{}{}
	for _, f := range fallback {
		if strings.TrimSpace(f) == "" {
			return false
		}
		seen[f] = struct{}{}
	}
	return len(seen) >= size
}
