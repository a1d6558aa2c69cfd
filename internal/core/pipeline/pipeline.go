// Package pipeline walks the trend surfaces in order, accumulates candidates
// and always finishes with exactly ResultSize trends.
package pipeline

import (
	"errors"
	"fmt"

	"trendscraper/internal/core/classify"
	"trendscraper/internal/core/collect"
	"trendscraper/internal/core/extract"
	"trendscraper/internal/core/score"
	"trendscraper/internal/logger"
)

// State is a step of a run.
type State string

const (
	StateInit         State = "init"
	StatePrimary      State = "primary"
	StateSecondary    State = "secondary"
	StateTertiary     State = "tertiary"
	StateLinkFallback State = "link_fallback"
	StateFinalize     State = "finalize"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// ErrNavigation wraps failures reported by Page.Navigate.
var ErrNavigation = errors.New("page navigation failed")

// Result always holds exactly ResultSize non-empty trends.
type Result struct {
	Trends []string `json:"trends"`
	// Padded counts trailing entries taken from the fallback set.
	Padded     int     `json:"padded"`
	Candidates int     `json:"candidates"`
	Visited    []State `json:"visited"`
	Final      State   `json:"final"`
}

// UsedFallback reports whether any trend came from the fallback set.
func (r Result) UsedFallback() bool { return r.Padded > 0 }

type Pipeline struct {
	cfg       Config
	log       *logger.Logger
	extractor *extract.Extractor
}

func New(cfg Config, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.New("Pipeline")
	}
	return &Pipeline{
		cfg:       cfg.withDefaults(),
		log:       log,
		extractor: extract.NewExtractor(classify.IsValidTrend, log),
	}
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// RunPipeline builds a pipeline from cfg and runs it once against page.
func RunPipeline(page extract.Page, cfg Config) (Result, error) {
	return New(cfg, nil).Run(page)
}

// Run executes one pass. The result always carries ResultSize trends. When
// the page cannot navigate, the result is the fallback set and the error
// wraps ErrNavigation.
func (p *Pipeline) Run(page extract.Page) (Result, error) {
	var (
		pool    []string
		visited = []State{StateInit}
		state   = p.next(StateInit, 0)
	)

	for {
		visited = append(visited, state)

		switch state {
		case StatePrimary, StateSecondary, StateTertiary:
			url := p.surfaceURL(state)
			if err := p.navigate(page, url); err != nil {
				p.log.Error().Str("state", string(state)).Str("url", url).Err(err).Msg("navigation failed")
				res := p.fallbackResult(len(pool), append(visited, StateFailed))
				return res, fmt.Errorf("%w (%s %s): %w", ErrNavigation, state, url, err)
			}
			found := p.extract(state, page, p.cfg.Strategies.Surface, p.cfg.SurfaceTarget)
			pool = collect.Add(pool, found, p.cfg.PoolCap)

		case StateLinkFallback:
			found := p.extract(state, page, p.cfg.Strategies.Links, p.cfg.LinkTarget)
			pool = collect.Add(pool, found, p.cfg.PoolCap)

		case StateFinalize:
			trends, padded := p.finalize(pool)
			visited = append(visited, StateDone)
			p.log.Info().Strs("trends", trends).Int("padded", padded).Int("pool", len(pool)).Msg("pipeline done")
			return Result{
				Trends:     trends,
				Padded:     padded,
				Candidates: len(pool),
				Visited:    visited,
				Final:      StateDone,
			}, nil
		}

		p.log.Info().Str("state", string(state)).Int("candidates", len(pool)).Msg("state complete")
		state = p.next(state, len(pool))
	}
}

// next picks the state after s given the pool size so far.
func (p *Pipeline) next(s State, n int) State {
	enough := func(alt State) State {
		if n < p.cfg.ResultSize {
			return StateLinkFallback
		}
		return alt
	}
	switch s {
	case StateInit:
		return StatePrimary
	case StatePrimary:
		if n < p.cfg.MinCandidates {
			return StateSecondary
		}
		return enough(StateFinalize)
	case StateSecondary:
		if n < p.cfg.MinCandidates {
			return StateTertiary
		}
		return enough(StateFinalize)
	case StateTertiary:
		return enough(StateFinalize)
	default:
		return StateFinalize
	}
}

func (p *Pipeline) surfaceURL(s State) string {
	switch s {
	case StateSecondary:
		return p.cfg.Surfaces.Secondary
	case StateTertiary:
		return p.cfg.Surfaces.Tertiary
	default:
		return p.cfg.Surfaces.Primary
	}
}

func (p *Pipeline) navigate(page extract.Page, url string) error {
	if err := page.Navigate(url); err != nil {
		return err
	}
	page.Wait(p.cfg.SettleDelay)
	return nil
}

// extract runs one extraction. A panic inside it counts as zero candidates
// for this state.
func (p *Pipeline) extract(state State, page extract.Page, set extract.Set, target int) (found []string) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Str("state", string(state)).Interface("panic", r).Msg("extraction aborted")
			found = nil
		}
	}()
	return extract.Texts(p.extractor.Extract(page, set, target))
}

// finalize filters, ranks, truncates and pads the pool.
func (p *Pipeline) finalize(pool []string) ([]string, int) {
	accept := classify.IsValidTrend
	if p.cfg.Strict {
		accept = classify.Strict
	}
	kept := make([]string, 0, len(pool))
	for _, c := range pool {
		if accept(c) {
			kept = append(kept, c)
		}
	}

	ranked := score.Texts(score.Rank(kept))
	if len(ranked) > p.cfg.ResultSize {
		ranked = ranked[:p.cfg.ResultSize]
	}
	if len(ranked) == 0 {
		return p.fallback(), p.cfg.ResultSize
	}

	padded := 0
	for _, f := range p.cfg.Fallback {
		if len(ranked) >= p.cfg.ResultSize {
			break
		}
		if collect.Contains(ranked, f) {
			continue
		}
		ranked = append(ranked, f)
		padded++
	}
	return ranked, padded
}

func (p *Pipeline) fallback() []string {
	return collect.Add(nil, p.cfg.Fallback, p.cfg.ResultSize)
}

func (p *Pipeline) fallbackResult(candidates int, visited []State) Result {
	return Result{
		Trends:     p.fallback(),
		Padded:     p.cfg.ResultSize,
		Candidates: candidates,
		Visited:    visited,
		Final:      StateFailed,
	}
}
