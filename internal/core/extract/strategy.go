package extract

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Intent tags what region of the page a strategy is aimed at.
type Intent string

const (
	IntentTrendWidget      Intent = "trend_widget"
	IntentSidebarLink      Intent = "sidebar_link"
	IntentSearchSuggestion Intent = "search_suggestion"
	IntentGenericFallback  Intent = "generic_fallback"
)

// Kind is the query language of a strategy.
type Kind string

const (
	KindCSS   Kind = "css"
	KindXPath Kind = "xpath"
)

const xpathPrefix = "xpath="

// Strategy is one named locator. Lower Priority runs first.
type Strategy struct {
	Name     string `yaml:"name" json:"name"`
	Intent   Intent `yaml:"intent" json:"intent"`
	Kind     Kind   `yaml:"kind" json:"kind"`
	Query    string `yaml:"query" json:"query"`
	Priority int    `yaml:"priority" json:"priority"`
	MaxNodes int    `yaml:"max_nodes" json:"max_nodes"`
}

// Selector is the query string handed to Page.Locate.
func (s Strategy) Selector() string {
	if s.Kind == KindXPath {
		return xpathPrefix + s.Query
	}
	return s.Query
}

func (s Strategy) Validate() error {
	switch s.Intent {
	case IntentTrendWidget, IntentSidebarLink, IntentSearchSuggestion, IntentGenericFallback:
	default:
		return fmt.Errorf("strategy %q: unknown intent %q", s.Name, s.Intent)
	}
	switch s.Kind {
	case KindCSS, KindXPath:
	default:
		return fmt.Errorf("strategy %q: unknown kind %q", s.Name, s.Kind)
	}
	if s.Name == "" || s.Query == "" {
		return fmt.Errorf("strategy %q: name and query are required", s.Name)
	}
	if s.MaxNodes <= 0 {
		return fmt.Errorf("strategy %q: max_nodes must be positive", s.Name)
	}
	return nil
}

// Set is an ordered group of strategies.
type Set []Strategy

// Ordered returns a copy sorted by priority; equal priorities keep their order.
func (s Set) Ordered() Set {
	out := append(Set(nil), s...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

func (s Set) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("strategy set is empty")
	}
	for _, st := range s {
		if err := st.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Strategies holds the set used on rendered trend surfaces and the set used
// for the anchor scan.
type Strategies struct {
	Surface Set `yaml:"surface" json:"surface"`
	Links   Set `yaml:"links" json:"links"`
}

func (s Strategies) Validate() error {
	if err := s.Surface.Validate(); err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	if err := s.Links.Validate(); err != nil {
		return fmt.Errorf("links: %w", err)
	}
	return nil
}

// DefaultStrategies targets the current trend layout of the site.
func DefaultStrategies() Strategies {
	return Strategies{
		Surface: Set{
			{Name: "trend-cell", Intent: IntentTrendWidget, Kind: KindCSS, Query: `[data-testid="trend"] span`, Priority: 10, MaxNodes: 30},
			{Name: "timeline-cell", Intent: IntentTrendWidget, Kind: KindCSS, Query: `div[data-testid="cellInnerDiv"]:not(:has(time)) [dir="ltr"] span`, Priority: 20, MaxNodes: 30},
			{Name: "trending-region", Intent: IntentTrendWidget, Kind: KindCSS, Query: `div[aria-label*="Trending"] span:not(:has(time))`, Priority: 30, MaxNodes: 30},
			{Name: "sidebar-link", Intent: IntentSidebarLink, Kind: KindCSS, Query: `[data-testid="sidebarColumn"] [role="link"] span`, Priority: 40, MaxNodes: 20},
			{Name: "sidebar-text", Intent: IntentSidebarLink, Kind: KindCSS, Query: `[data-testid="sidebarColumn"] div[dir="ltr"] span`, Priority: 50, MaxNodes: 20},
			{Name: "search-suggestion", Intent: IntentSearchSuggestion, Kind: KindCSS, Query: `a[href*="/search?q="] span`, Priority: 60, MaxNodes: 20},
			{Name: "section-span", Intent: IntentGenericFallback, Kind: KindCSS, Query: `section div[dir="ltr"] > span`, Priority: 70, MaxNodes: 20},
			{Name: "cell-span-xpath", Intent: IntentGenericFallback, Kind: KindXPath, Query: `//div[@data-testid="cellInnerDiv"]//span`, Priority: 80, MaxNodes: 20},
		},
		Links: Set{
			{Name: "search-anchor", Intent: IntentSearchSuggestion, Kind: KindCSS, Query: `a[href*="/search?q="]`, Priority: 10, MaxNodes: 15},
			{Name: "trend-aria-link", Intent: IntentSidebarLink, Kind: KindCSS, Query: `[role="link"][aria-label*="trend"]`, Priority: 20, MaxNodes: 15},
			{Name: "sidebar-anchor", Intent: IntentSidebarLink, Kind: KindCSS, Query: `div[data-testid="sidebarColumn"] [role="link"]`, Priority: 30, MaxNodes: 15},
			{Name: "role-link-span", Intent: IntentGenericFallback, Kind: KindCSS, Query: `[role="link"] span`, Priority: 40, MaxNodes: 15},
			{Name: "search-anchor-xpath", Intent: IntentGenericFallback, Kind: KindXPath, Query: `//a[contains(@href, "/search?q=")]`, Priority: 50, MaxNodes: 15},
		},
	}
}

// LoadStrategies reads a YAML override file. Sets missing from the file keep
// their defaults.
func LoadStrategies(path string) (Strategies, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Strategies{}, fmt.Errorf("read strategies: %w", err)
	}
	return ParseStrategies(b)
}

func ParseStrategies(b []byte) (Strategies, error) {
	var file Strategies
	if err := yaml.Unmarshal(b, &file); err != nil {
		return Strategies{}, fmt.Errorf("parse strategies: %w", err)
	}
	out := DefaultStrategies()
	if len(file.Surface) > 0 {
		out.Surface = file.Surface
	}
	if len(file.Links) > 0 {
		out.Links = file.Links
	}
	if err := out.Validate(); err != nil {
		return Strategies{}, err
	}
	return out, nil
}
