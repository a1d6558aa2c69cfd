// Package classify decides whether scraped text is a trend label rather than
// navigation chrome, promotional copy, a headline or an engagement counter.
package classify

// Verdict is the outcome of running one rule chain.
type Verdict struct {
	Accepted bool
	// Rule names the first rule that rejected the text; empty when accepted.
	Rule string
}

// Evaluate runs text through rules and stops at the first rejection.
func Evaluate(rules []Rule, text string) Verdict {
	t, ok := Normalize(text)
	if !ok {
		return Verdict{Rule: RuleInvalidInput}
	}
	for _, r := range rules {
		if r.Reject(t) {
			return Verdict{Rule: r.Name}
		}
	}
	return Verdict{Accepted: true}
}

// IsValidTrend filters out counters, timestamps, headlines and page chrome.
func IsValidTrend(text string) bool {
	return Evaluate(validTrendRules, text).Accepted
}

// IsActualTrend is the stricter filter for footer, sign-up and news strings
// that slip past IsValidTrend. Hashtags pass once the rejections clear;
// anything else must look like a short topical label.
func IsActualTrend(text string) bool {
	return Evaluate(actualTrendRules, text).Accepted
}

// Strict accepts text only when both chains do.
func Strict(text string) bool {
	return IsValidTrend(text) && IsActualTrend(text)
}
