// Package record persists the outcome of each scrape run.
package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trendscraper/internal/errs"
)

// TrendCount is the exact number of trends every record holds.
const TrendCount = 5

// RunRecord is immutable once saved.
type RunRecord struct {
	RunID     string    `json:"runId"`
	Trends    []string  `json:"trends"`
	IPAddress string    `json:"ipAddress"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r RunRecord) Validate() error {
	if strings.TrimSpace(r.RunID) == "" {
		return errs.NewValidation("record", "runId is required")
	}
	if len(r.Trends) != TrendCount {
		return errs.NewValidation("record", fmt.Sprintf("trends must hold exactly %d items, got %d", TrendCount, len(r.Trends)))
	}
	for i, t := range r.Trends {
		if strings.TrimSpace(t) == "" {
			return errs.NewValidation("record", fmt.Sprintf("trend %d is empty", i+1))
		}
	}
	if strings.TrimSpace(r.IPAddress) == "" {
		return errs.NewValidation("record", "ipAddress is required")
	}
	return nil
}

type Summary struct {
	RunID      string    `json:"runId"`
	TrendCount int       `json:"trendCount"`
	IPAddress  string    `json:"ipAddress"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r RunRecord) Summary() Summary {
	return Summary{RunID: r.RunID, TrendCount: len(r.Trends), IPAddress: r.IPAddress, CreatedAt: r.CreatedAt}
}

type Stats struct {
	TotalRecords int64    `json:"totalRecords"`
	LatestRun    *Summary `json:"latestRun"`
	OldestRun    *Summary `json:"oldestRun"`
}

// Store saves and reads run records. Save sets CreatedAt when it is zero and
// rejects a duplicate RunID with a validation error. Get returns a not_found
// error for unknown ids. Latest is ordered by CreatedAt, newest first.
type Store interface {
	Save(ctx context.Context, r *RunRecord) error
	Get(ctx context.Context, runID string) (*RunRecord, error)
	Latest(ctx context.Context, limit int) ([]RunRecord, error)
	Stats(ctx context.Context) (Stats, error)
}

func prepare(r *RunRecord, now time.Time) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now.UTC()
	}
	r.Trends = append([]string(nil), r.Trends...)
	return r.Validate()
}

func duplicate(runID string) error {
	return errs.NewValidation("record", "runId already exists: "+runID)
}

func notFound(runID string) error {
	return errs.NewNotFound("record", "no run with id "+runID)
}
