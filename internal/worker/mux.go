// Package worker routes queued tasks to their handlers.
package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"trendscraper/internal/logger"
)

type HandlerFunc func(ctx context.Context, task *asynq.Task) error

type Mux struct {
	mux *asynq.ServeMux
	log *logger.Logger
}

func NewMux() *Mux {
	m := &Mux{mux: asynq.NewServeMux(), log: logger.New("Worker")}
	m.mux.Use(m.logged)
	return m
}

func (m *Mux) HandleFunc(taskType string, h HandlerFunc) {
	m.mux.HandleFunc(taskType, h)
}

func (m *Mux) Mux() *asynq.ServeMux { return m.mux }

// logged records the outcome and duration of every task.
func (m *Mux) logged(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		start := time.Now()
		err := next.ProcessTask(ctx, t)
		ev := m.log.Info()
		if err != nil {
			ev = m.log.Error().Err(err)
		}
		ev.Str("type", t.Type()).Dur("took", time.Since(start)).Msg("task processed")
		return err
	})
}
