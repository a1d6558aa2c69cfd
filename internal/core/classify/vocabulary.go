package classify

import "regexp"

const (
	MinLength = 2
	MaxLength = 40

	// Texts longer than this are checked against headline phrasing.
	newsPhrasingLength = 25
	// Plain alphanumeric labels up to this length are accepted as a last resort.
	plainLabelLength = 20
)

// Matched as substrings of the lowercased text.
var promotionalTerms = []string{
	"subscribe",
	"premium",
	"unlock",
	"features",
	"revenue",
	"show more",
	"see more",
	"trending",
	"what's happening",
	"whats happening",
	"for you",
	"follow",
	"suggested",
	"promoted",
	"advertisement",
	"sponsored",
	"happening now",
	"breaking",
	"update",
}

// Short promotional words that would hit inside ordinary words as substrings.
var promotionalWords = regexp.MustCompile(`(?i)\b(?:ad|ads|live)\b`)

var newsPhrasing = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:says|said|reports?|reported|announced?|announces|confirms?|confirmed|claims?|warns?|reveals?)\b`),
	regexp.MustCompile(`(?i)\b(?:president|minister|government|senate|congress|parliament|court|police|officials?)\b`),
	regexp.MustCompile(`(?i)\b(?:economy|election|war|crisis|attack|killed|dies|dead|protests?)\b`),
}

var engagementCount = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\d+(?:[.,]\d+)*\s*[KM]?\s*(?:posts?|tweets?|replies|reply|likes?|retweets?|reposts?|views?)?$`),
	regexp.MustCompile(`(?i)^[\d.,]+\s*[KM]?\s+(?:posts?|tweets?)\b`),
}

var relativeTime = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\d+\s*[hms]$`),
	regexp.MustCompile(`(?i)\bago$`),
	regexp.MustCompile(`(?i)\b(?:yesterday|today)\b`),
	regexp.MustCompile(`(?i)\bnow$`),
}

var newsCategory = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:news|sports|entertainment|politics|technology|business|trending|music|gaming|science)\s*·`),
	regexp.MustCompile(`(?i)·\s*(?:news|sports|entertainment|politics|technology|business|trending|music|gaming|science)$`),
}

var bareNumber = []*regexp.Regexp{
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`(?i)^\d+(?:\.\d+)?[KM]$`),
}

var uiChrome = setOf(
	"...",
	"…",
	"more",
	"less",
	"show",
	"hide",
	"expand",
	"collapse",
	"view",
	"see",
	"load",
	"refresh",
	"reload",
	"back",
	"next",
	"previous",
	"close",
	"show more",
	"see more",
	"view more",
	"load more",
	"more trends",
	"show all",
	"see all",
	"menu",
)

var navigationRoutes = setOf(
	"home",
	"explore",
	"notifications",
	"messages",
	"bookmarks",
	"lists",
	"profile",
	"settings",
	"help",
	"about",
	"terms",
	"privacy",
	"communities",
	"topics",
)

// Page furniture, footer links and sign-up prompts that look like labels.
var footerVocabulary = setOf(
	"new to x?",
	"new to twitter?",
	"sign up",
	"sign in",
	"log in",
	"login",
	"create account",
	"sign up with google",
	"sign up with apple",
	"terms of service",
	"privacy policy",
	"cookie policy",
	"accessibility",
	"ads info",
	"more",
	"© 2025 x corp.",
	"© 2026 x corp.",
	"trending now",
	"what's happening",
	"whats happening",
	"who to follow",
	"relevant people",
	"show more",
	"see more",
	"for you",
	"following",
	"trending",
	"news",
	"sports",
	"entertainment",
	"explore",
	"home",
	"notifications",
	"messages",
	"bookmarks",
	"lists",
	"profile",
	"premium",
	"verified orgs",
	"communities",
	"grok",
	"jobs",
	"settings",
	"help center",
	"get verified",
	"search",
	"search x",
	"timeline",
	"posts",
	"replies",
	"media",
	"likes",
)

var newsIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:bbc|cnn|reuters|associated press|fox news|nbc|cbs|npr|bloomberg|the guardian|new york times|washington post)\b`),
	regexp.MustCompile(`\bAP\b`),
	regexp.MustCompile(`(?i)\bjust now\b`),
	regexp.MustCompile(`(?i)\b\d+\s+(?:seconds?|minutes?|hours?|days?|weeks?)\s+ago\b`),
	regexp.MustCompile(`(?i)\b(?:minutes?|hours?)\s+ago\b`),
	regexp.MustCompile(`(?i)\b(?:yesterday|today|tomorrow|breaking)\b`),
	regexp.MustCompile(`(?i)\b(?:news|report|reports|update|alert)\b`),
	regexp.MustCompile(`\b\d{1,2}:\d{2}\b`),
	regexp.MustCompile(`\b(?:AM|PM)\b`),
	regexp.MustCompile(`^\w+:\s`),
	regexp.MustCompile(`(?:\.\.\.|…)$`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}\b`),
}

// Shapes characteristic of short topical labels.
var trendShapes = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][a-z]+$`),
	regexp.MustCompile(`^[A-Z][a-z]+(?:[A-Z][a-z]*)+$`),
	regexp.MustCompile(`^[A-Za-z]+\d+$`),
	regexp.MustCompile(`^[A-Z]{2,}$`),
	regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`),
	regexp.MustCompile(`^[A-Za-z]+ \d+$`),
	regexp.MustCompile(`(?i)^[\w .'-]+ vs\.? [\w .'-]+$`),
	regexp.MustCompile(`^#?\w+(?: #?\w+){0,2}$`),
}

var plainLabel = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)

func setOf(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
