// Package scrape runs one trend extraction end to end: session, pipeline,
// egress lookup, record persistence and cooldown bookkeeping.
package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"trendscraper/internal/core/extract"
	"trendscraper/internal/core/job"
	"trendscraper/internal/core/pipeline"
	"trendscraper/internal/core/record"
	"trendscraper/internal/core/snapshot"
	"trendscraper/internal/errs"
	"trendscraper/internal/logger"
	"trendscraper/internal/platform/tasks"
)

// Session is an open page driver.
type Session interface {
	Page() extract.Page
	Close() error
}

type SessionOpener func(ctx context.Context) (Session, error)

type AddressResolver interface {
	Lookup() string
}

type Cooldown interface {
	Remaining() (time.Duration, error)
	Trip() error
	Reset() error
}

type SnapshotStore interface {
	Capture(page extract.Page, runID string) (string, error)
}

type Enqueuer interface {
	Enqueue(task *asynq.Task, queue string, maxRetries int) error
}

type Payload struct {
	RunID string `json:"run_id"`
}

// Outcome is a saved run.
type Outcome struct {
	Record      record.RunRecord `json:"record"`
	Result      pipeline.Result  `json:"result"`
	SnapshotURL string           `json:"snapshotUrl,omitempty"`
}

type Dependencies struct {
	Open     SessionOpener
	Pipeline *pipeline.Pipeline
	Resolver AddressResolver
	Store    record.Store
	Cooldown Cooldown

	// Optional.
	Snapshots SnapshotStore
	Jobs      *job.JobService
	Tasks     Enqueuer

	// RequireCredentials rejects runs before opening a session.
	RequireCredentials bool
	HasCredentials     bool
	MaxRetries         int
}

type Service struct {
	log *logger.Logger
	d   Dependencies
}

func NewService(d Dependencies) *Service {
	return &Service{log: logger.New("ScrapeService"), d: d}
}

// Run performs a synchronous run under a fresh id.
func (s *Service) Run(ctx context.Context) (*Outcome, error) {
	return s.run(ctx, uuid.NewString())
}

func (s *Service) run(ctx context.Context, runID string) (*Outcome, error) {
	log := s.log.WithRun(runID)

	if s.d.RequireCredentials && !s.d.HasCredentials {
		return nil, errs.NewConfig("X_USERNAME and X_PASSWORD are required", nil)
	}
	if s.d.Cooldown != nil {
		left, err := s.d.Cooldown.Remaining()
		if err != nil {
			log.Warn().Err(err).Msg("cooldown lookup failed, proceeding")
		}
		if left > 0 {
			return nil, errs.NewCooldown(left)
		}
	}

	start := time.Now()
	sess, err := s.d.Open(ctx)
	if err != nil {
		s.tripOn(log, err)
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Warn().Err(err).Msg("session close failed")
		}
	}()

	page := sess.Page()
	res, err := s.d.Pipeline.Run(page)
	if err != nil {
		err = errs.NewNavigation("pipeline", "run aborted", err)
		s.tripOn(log, err)
		return nil, err
	}

	out := &Outcome{Result: res}
	if res.UsedFallback() {
		log.Warn().Int("padded", res.Padded).Int("candidates", res.Candidates).Msg("result uses fallback trends")
		out.SnapshotURL = s.capture(log, page, runID)
	}

	rec := record.RunRecord{RunID: runID, Trends: res.Trends, IPAddress: s.d.Resolver.Lookup()}
	if err := s.d.Store.Save(ctx, &rec); err != nil {
		return nil, err
	}
	out.Record = rec

	if s.d.Cooldown != nil {
		if err := s.d.Cooldown.Reset(); err != nil {
			log.Warn().Err(err).Msg("cooldown reset failed")
		}
	}
	log.Info().Strs("trends", rec.Trends).Str("ip", rec.IPAddress).Dur("took", time.Since(start)).Msg("run saved")
	return out, nil
}

// tripOn starts the cooldown after session and navigation failures.
func (s *Service) tripOn(log *logger.Logger, err error) {
	switch errs.TypeOf(err) {
	case errs.TypeSession, errs.TypeNavigation:
	default:
		return
	}
	log.Error().Err(err).Msg("run failed")
	if s.d.Cooldown == nil {
		return
	}
	if terr := s.d.Cooldown.Trip(); terr != nil {
		log.Warn().Err(terr).Msg("cooldown trip failed")
	}
}

// capture never fails the run.
func (s *Service) capture(log *logger.Logger, page extract.Page, runID string) string {
	if s.d.Snapshots == nil {
		return ""
	}
	loc, err := s.d.Snapshots.Capture(page, runID)
	if errors.Is(err, snapshot.ErrUnsupported) {
		log.LogDebugf("page driver cannot capture snapshots")
		return ""
	}
	if err != nil {
		log.Warn().Err(err).Msg("snapshot capture failed")
		return ""
	}
	log.LogInfof("fallback snapshot stored at %s", loc)
	return loc
}

// Enqueue schedules a background run and returns its id.
func (s *Service) Enqueue(ctx context.Context) (string, error) {
	if s.d.Tasks == nil || s.d.Jobs == nil {
		return "", errs.NewConfig("background runs are not configured", nil)
	}
	runID := uuid.NewString()
	if err := s.d.Jobs.InitPending(ctx, runID); err != nil {
		return "", err
	}
	payload, err := json.Marshal(Payload{RunID: runID})
	if err != nil {
		return "", err
	}
	if err := s.d.Tasks.Enqueue(asynq.NewTask(tasks.TaskTypeScrape, payload), tasks.QueueDefault, s.d.MaxRetries); err != nil {
		return "", errs.NewStorage("enqueue", "submit task", err)
	}
	return runID, nil
}

// HandleTask runs a queued scrape. Scheduled tasks carry no id and get one here.
// Only retryable failures are handed back to asynq for another attempt.
func (s *Service) HandleTask(ctx context.Context, task *asynq.Task) error {
	var p Payload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}
	}
	if p.RunID == "" {
		p.RunID = uuid.NewString()
	}
	if s.d.Jobs != nil {
		if err := s.d.Jobs.SetProcessing(ctx, p.RunID); err != nil {
			return err
		}
	}

	out, err := s.run(ctx, p.RunID)
	if err != nil {
		if s.d.Jobs != nil {
			if jerr := s.d.Jobs.Fail(ctx, p.RunID, err); jerr != nil {
				s.log.LogErrorf("mark run %s failed: %v", p.RunID, jerr)
			}
		}
		if errs.IsRetryable(err) {
			return err
		}
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if s.d.Jobs == nil {
		return nil
	}
	return s.d.Jobs.Complete(ctx, p.RunID, job.RunResult{
		Trends:      out.Record.Trends,
		IPAddress:   out.Record.IPAddress,
		CreatedAt:   out.Record.CreatedAt,
		Padded:      out.Result.Padded,
		SnapshotURL: out.SnapshotURL,
	})
}

// RunStatus returns the tracked state of a background run.
func (s *Service) RunStatus(ctx context.Context, runID string) (*job.Job, error) {
	if s.d.Jobs == nil {
		return nil, errs.NewNotFound("job", "no run with id "+runID)
	}
	return s.d.Jobs.GetJobStatus(ctx, runID)
}
