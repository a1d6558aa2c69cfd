package job

import (
	"context"
	"errors"
	"time"

	"trendscraper/internal/errs"
	rds "trendscraper/internal/platform/redis"
)

// Store is the JSON key-value store jobs are kept in.
type Store interface {
	CacheGet(ctx context.Context, key string, dest interface{}) error
	CacheSet(ctx context.Context, key string, val interface{}, ttl time.Duration) error
}

const (
	activeTTL   = 10 * time.Minute
	finishedTTL = time.Hour
)

type JobService struct {
	store Store
	now   func() time.Time
}

func NewJobService(store Store) *JobService { return &JobService{store: store, now: time.Now} }

func (s *JobService) GetJobStatus(ctx context.Context, runID string) (*Job, error) {
	var j Job
	err := s.store.CacheGet(ctx, key(runID), &j)
	if errors.Is(err, rds.ErrNotFound) {
		return nil, errs.NewNotFound("job", "no run with id "+runID)
	}
	if err != nil {
		return nil, errs.NewStorage("job", "read status", err)
	}
	return &j, nil
}

func (s *JobService) put(ctx context.Context, runID string, status Status, result *RunResult, cause error) error {
	j := Job{RunID: runID, Type: TypeScrape, Status: status, Result: result, UpdatedAt: s.now().UTC()}
	if cause != nil {
		j.Error = cause.Error()
	}
	ttl := activeTTL
	if status.Finished() {
		ttl = finishedTTL
	}
	if err := s.store.CacheSet(ctx, key(runID), j, ttl); err != nil {
		return errs.NewStorage("job", "write status", err)
	}
	return nil
}

func (s *JobService) InitPending(ctx context.Context, runID string) error {
	return s.put(ctx, runID, StatusPending, nil, nil)
}

func (s *JobService) SetProcessing(ctx context.Context, runID string) error {
	return s.put(ctx, runID, StatusProcessing, nil, nil)
}

func (s *JobService) Complete(ctx context.Context, runID string, result RunResult) error {
	return s.put(ctx, runID, StatusCompleted, &result, nil)
}

func (s *JobService) Fail(ctx context.Context, runID string, cause error) error {
	return s.put(ctx, runID, StatusFailed, nil, cause)
}

func key(id string) string { return "job:" + id }
