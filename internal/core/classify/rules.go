package classify

import "strings"

// Rule is one named rejection check in a chain.
type Rule struct {
	Name   string
	Reject func(Text) bool
}

// Reported when normalization fails before any rule runs.
const RuleInvalidInput = "invalid_input"

// Rule names, usable in tests and debug logs.
const (
	RulePromotional     = "promotional_vocabulary"
	RuleNewsPhrasing    = "news_phrasing"
	RuleTooLong         = "too_long"
	RuleEngagementCount = "engagement_count"
	RuleRelativeTime    = "relative_time"
	RuleNewsCategory    = "news_category"
	RuleBareNumber      = "bare_number"
	RuleTooShort        = "too_short"
	RuleUIChrome        = "ui_chrome"
	RuleFooter          = "footer_vocabulary"
	RuleNewsIndicator   = "news_indicator"
	RuleNoTrendShape    = "no_trend_shape"
)

var validTrendRules = []Rule{
	{RulePromotional, func(t Text) bool {
		for _, term := range promotionalTerms {
			if strings.Contains(t.Lower, term) {
				return true
			}
		}
		return promotionalWords.MatchString(t.Raw)
	}},
	{RuleNewsPhrasing, func(t Text) bool {
		return t.Len > newsPhrasingLength && matchesAny(newsPhrasing, t.Raw)
	}},
	{RuleTooLong, tooLong},
	{RuleEngagementCount, func(t Text) bool { return matchesAny(engagementCount, t.Raw) }},
	{RuleRelativeTime, func(t Text) bool { return matchesAny(relativeTime, t.Raw) }},
	{RuleNewsCategory, func(t Text) bool { return matchesAny(newsCategory, t.Raw) }},
	{RuleBareNumber, func(t Text) bool { return matchesAny(bareNumber, t.Raw) }},
	{RuleTooShort, tooShort},
	{RuleUIChrome, func(t Text) bool {
		_, chrome := uiChrome[t.Lower]
		_, route := navigationRoutes[t.Lower]
		return chrome || route
	}},
}

var actualTrendRules = []Rule{
	{RuleTooLong, tooLong},
	{RuleTooShort, tooShort},
	{RuleFooter, func(t Text) bool {
		_, ok := footerVocabulary[t.Lower]
		return ok
	}},
	{RuleNewsIndicator, func(t Text) bool { return matchesAny(newsIndicators, t.Raw) }},
	{RuleNoTrendShape, func(t Text) bool {
		if strings.HasPrefix(t.Raw, "#") {
			return false
		}
		if matchesAny(trendShapes, t.Raw) {
			return false
		}
		return !(t.Len <= plainLabelLength && plainLabel.MatchString(t.Raw))
	}},
}

func tooLong(t Text) bool  { return t.Len > MaxLength }
func tooShort(t Text) bool { return t.Len < MinLength }

// ValidTrendRules returns the isValidTrend chain in evaluation order.
func ValidTrendRules() []Rule { return append([]Rule(nil), validTrendRules...) }

// ActualTrendRules returns the isActualTrend chain in evaluation order.
func ActualTrendRules() []Rule { return append([]Rule(nil), actualTrendRules...) }
