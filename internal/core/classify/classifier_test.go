package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, ok := Normalize("  #WorldCup \n")
	require.True(t, ok)
	assert.Equal(t, "#WorldCup", got.Raw)
	assert.Equal(t, "#worldcup", got.Lower)
	assert.Equal(t, 9, got.Len)

	for _, in := range []string{"", "   ", "\t\n", "\xff\xfe"} {
		_, ok := Normalize(in)
		assert.False(t, ok, "%q", in)
	}
}

func TestNormalize_CountsRunes(t *testing.T) {
	got, ok := Normalize("Café")
	require.True(t, ok)
	assert.Equal(t, 4, got.Len)
}

func TestIsValidTrend(t *testing.T) {
	tests := []struct {
		in   string
		want bool
		rule string
	}{
		{"#AI", true, ""},
		{"#Bitcoin", true, ""},
		{"Elon Musk", true, ""},
		{"Lakers vs Celtics", true, ""},
		{"GPT5", true, ""},
		{"", false, RuleInvalidInput},
		{"   ", false, RuleInvalidInput},
		{"Show more", false, RulePromotional},
		{"Promoted", false, RulePromotional},
		{"Watch live", false, RulePromotional},
		{"Trending in United States", false, RulePromotional},
		{"President says the economy is recovering fast", false, RuleNewsPhrasing},
		{strings.Repeat("a", 41), false, RuleTooLong},
		{"29.6K posts", false, RuleEngagementCount},
		{"1,204 Tweets", false, RuleEngagementCount},
		{"12K", false, RuleEngagementCount},
		{"2024", false, RuleEngagementCount},
		{"3 hours ago", false, RuleRelativeTime},
		{"4 hours ago", false, RuleRelativeTime},
		{"5h", false, RuleRelativeTime},
		{"Yesterday", false, RuleRelativeTime},
		{"News ·", false, RuleNewsCategory},
		{"Entertainment · Music", false, RuleNewsCategory},
		{"x", false, RuleTooShort},
		{"Settings", false, RuleUIChrome},
		{"Load more", false, RuleUIChrome},
		{"Explore", false, RuleUIChrome},
	}
	rules := ValidTrendRules()
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidTrend(tt.in))
			v := Evaluate(rules, tt.in)
			assert.Equal(t, tt.want, v.Accepted)
			assert.Equal(t, tt.rule, v.Rule)
		})
	}
}

func TestIsValidTrend_WordBoundaryPromotionalTerms(t *testing.T) {
	// "ad" and "live" only reject as whole words.
	assert.True(t, IsValidTrend("Adele"))
	assert.True(t, IsValidTrend("#Liverpool"))
	assert.False(t, IsValidTrend("Ad"))
}

func TestLengthBoundary(t *testing.T) {
	forty := strings.Repeat("a", 40)
	fortyOne := strings.Repeat("a", 41)

	assert.True(t, IsValidTrend(forty))
	assert.True(t, IsActualTrend(forty))
	assert.False(t, IsValidTrend(fortyOne))
	assert.False(t, IsActualTrend(fortyOne))
	assert.False(t, IsValidTrend("#"+strings.Repeat("B", 40)))
}

func TestIsActualTrend(t *testing.T) {
	tests := []struct {
		in   string
		want bool
		rule string
	}{
		{"#WorldCup", true, ""},
		{"Taylor Swift", true, ""},
		{"Elon Musk", true, ""},
		{"SpaceX", true, ""},
		{"NASA", true, ""},
		{"iPhone 16", true, ""},
		{"Lakers vs Celtics", true, ""},
		{"bitcoin", true, ""},
		{"Create account", false, RuleFooter},
		{"Terms of Service", false, RuleFooter},
		{"New to X?", false, RuleFooter},
		{"Who to follow", false, RuleFooter},
		{"X", false, RuleTooShort},
		{"Reuters", false, RuleNewsIndicator},
		{"Breaking: markets fall", false, RuleNewsIndicator},
		{"Posted 3 hours ago", false, RuleNewsIndicator},
		{"Updated just now", false, RuleNewsIndicator},
		{"10:30", false, RuleNewsIndicator},
		{"Vote closes March 5", false, RuleNewsIndicator},
		{"Read the full story...", false, RuleNewsIndicator},
		{"a lowercase phrase with far too many words", false, RuleTooLong},
		{"a lowercase phrase with seven words", false, RuleNoTrendShape},
		{"Stocks, bonds & gold!", false, RuleNoTrendShape},
	}
	rules := ActualTrendRules()
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsActualTrend(tt.in))
			v := Evaluate(rules, tt.in)
			assert.Equal(t, tt.rule, v.Rule)
		})
	}
}

func TestStrict(t *testing.T) {
	assert.True(t, Strict("#OpenAI"))
	// Passes the first chain, caught by the footer vocabulary.
	assert.True(t, IsValidTrend("Create account"))
	assert.False(t, Strict("Create account"))
}

func TestRuleTables_Order(t *testing.T) {
	names := func(rules []Rule) []string {
		out := make([]string, 0, len(rules))
		for _, r := range rules {
			out = append(out, r.Name)
		}
		return out
	}

	assert.Equal(t, []string{
		RulePromotional,
		RuleNewsPhrasing,
		RuleTooLong,
		RuleEngagementCount,
		RuleRelativeTime,
		RuleNewsCategory,
		RuleBareNumber,
		RuleTooShort,
		RuleUIChrome,
	}, names(ValidTrendRules()))

	assert.Equal(t, []string{
		RuleTooLong,
		RuleTooShort,
		RuleFooter,
		RuleNewsIndicator,
		RuleNoTrendShape,
	}, names(ActualTrendRules()))
}

func TestRuleTables_ReturnCopies(t *testing.T) {
	rules := ValidTrendRules()
	rules[0] = Rule{Name: "mutated", Reject: func(Text) bool { return true }}

	assert.True(t, IsValidTrend("#AI"))
	assert.Equal(t, RulePromotional, ValidTrendRules()[0].Name)
}

func TestBareNumberRule_FiresOnItsOwn(t *testing.T) {
	var bare Rule
	for _, r := range ValidTrendRules() {
		if r.Name == RuleBareNumber {
			bare = r
		}
	}
	require.NotNil(t, bare.Reject)

	for _, in := range []string{"42", "3.5M", "12k"} {
		txt, _ := Normalize(in)
		assert.True(t, bare.Reject(txt), in)
	}
	txt, _ := Normalize("Area 51")
	assert.False(t, bare.Reject(txt))
}

func TestPredicatesAreTotal(t *testing.T) {
	inputs := []string{
		"\x00", "\xff", "🔥🔥🔥", "#", "##", "·", strings.Repeat("·", 100),
		"((((", "[a-z]+", "\\b", "日本語のトレンド", "  #  ",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_ = IsValidTrend(in)
			_ = IsActualTrend(in)
		}, in)
	}
}
