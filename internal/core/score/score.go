// Package score ranks accepted trend candidates. Scores are heuristics for
// ordering only; they never gate acceptance.
package score

import (
	"regexp"
	"sort"
	"strings"

	"trendscraper/internal/core/classify"
)

const (
	hashtagBonus      = 100
	camelCaseBonus    = 20
	capitalizedBonus  = 10
	functionWordCost  = 20
	headlineVerbsCost = 50
)

var (
	camelCase    = regexp.MustCompile(`^[A-Z][a-z]+(?:[A-Z][a-z]*)*$`)
	capitalized  = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	headlineVerb = regexp.MustCompile(`\b(?:says|said|reports|announced|confirms)\b`)
)

var functionWords = []string{"the", "and", "in", "on", "at", "to", "for", "of", "with", "by"}

// Scored pairs a candidate with its score.
type Scored struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Score is a pure function of text. Invalid input scores zero.
func Score(text string) int {
	t, ok := classify.Normalize(text)
	if !ok {
		return 0
	}

	s := 0
	if strings.HasPrefix(t.Raw, "#") {
		s += hashtagBonus
	}
	switch {
	case t.Len <= 15:
		s += 50
	case t.Len <= 25:
		s += 30
	case t.Len <= 35:
		s += 10
	}
	if camelCase.MatchString(t.Raw) {
		s += camelCaseBonus
	}
	if capitalized.MatchString(t.Raw) {
		s += capitalizedBonus
	}
	for _, w := range functionWords {
		s -= functionWordCost * strings.Count(t.Lower, " "+w+" ")
	}
	if headlineVerb.MatchString(t.Lower) {
		s -= headlineVerbsCost
	}
	return s
}

// Rank scores texts and orders them by score, highest first. Ties keep their
// input order.
func Rank(texts []string) []Scored {
	out := make([]Scored, len(texts))
	for i, t := range texts {
		out[i] = Scored{Text: t, Score: Score(t)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Texts drops the scores, keeping order.
func Texts(scored []Scored) []string {
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Text
	}
	return out
}
