// Package extract harvests trend candidates from a loaded page by folding an
// ordered list of locator strategies.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"trendscraper/internal/core/collect"
	"trendscraper/internal/logger"
)

// Candidate is an accepted text plus the strategy that produced it.
type Candidate struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy"`
	Intent   Intent `json:"intent"`
}

// Skip explains why a strategy contributed nothing.
type Skip struct {
	Strategy string
	Err      error
}

func (s *Skip) Error() string { return fmt.Sprintf("strategy %s skipped: %v", s.Strategy, s.Err) }
func (s *Skip) Unwrap() error { return s.Err }

var errNoMatches = errors.New("no matching nodes")

// Extractor applies strategies to a page and keeps what accept allows.
type Extractor struct {
	log    *logger.Logger
	accept func(string) bool
}

func NewExtractor(accept func(string) bool, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.New("Extractor")
	}
	return &Extractor{log: log, accept: accept}
}

// Extract folds set over page until target candidates are held. A failing
// strategy or node is skipped; Extract itself never fails.
func (e *Extractor) Extract(page Page, set Set, target int) []Candidate {
	var (
		texts []string
		out   []Candidate
	)
	for _, s := range set.Ordered() {
		if len(texts) >= target {
			break
		}
		found, skip := e.apply(page, s, texts, target)
		if skip != nil {
			e.log.Debug().Str("strategy", s.Name).Err(skip.Err).Msg("strategy skipped")
			continue
		}
		for _, c := range found {
			texts = append(texts, c.Text)
			e.log.Debug().Str("strategy", c.Strategy).Str("intent", string(c.Intent)).Str("text", c.Text).Msg("candidate accepted")
		}
		out = append(out, found...)
	}
	return out
}

// apply runs one strategy. It returns the newly accepted candidates, or a
// Skip when the strategy produced nothing usable.
func (e *Extractor) apply(page Page, s Strategy, have []string, target int) ([]Candidate, *Skip) {
	nodes, err := page.Locate(s.Selector())
	if err != nil {
		return nil, &Skip{Strategy: s.Name, Err: err}
	}
	if len(nodes) == 0 {
		return nil, &Skip{Strategy: s.Name, Err: errNoMatches}
	}

	var found []Candidate
	for i := 0; i < len(nodes) && i < s.MaxNodes; i++ {
		if len(have) >= target {
			break
		}
		raw, err := nodes[i].Text()
		if err != nil {
			continue
		}
		text := strings.TrimSpace(raw)
		if !e.accept(text) {
			continue
		}
		next := collect.Add(have, []string{text}, target)
		if len(next) == len(have) {
			continue
		}
		have = next
		found = append(found, Candidate{Text: text, Strategy: s.Name, Intent: s.Intent})
	}
	return found, nil
}

// Texts returns the candidate texts in order.
func Texts(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Text
	}
	return out
}
