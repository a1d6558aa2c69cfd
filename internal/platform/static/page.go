// Package static implements page access over fetched HTML documents. It
// evaluates CSS with goquery and XPath with htmlquery, and never runs scripts.
package static

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"

	"trendscraper/internal/core/extract"
	"trendscraper/internal/logger"
)

const xpathPrefix = "xpath="

var errNoDocument = errors.New("no document loaded")

type Page struct {
	log     *logger.Logger
	fetcher Fetcher
	doc     *goquery.Document
}

func NewPage(f Fetcher) *Page {
	return &Page{log: logger.New("StaticPage"), fetcher: f}
}

func (p *Page) Navigate(url string) error {
	body, err := p.fetcher.Fetch(url)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse %s: %w", url, err)
	}
	p.doc = doc
	p.log.LogDebugf("loaded %s (%d bytes)", url, len(body))
	return nil
}

// Locate evaluates query against the loaded document. Selectors that
// cascadia cannot compile, such as browser-only pseudo classes, are errors.
func (p *Page) Locate(query string) ([]extract.Node, error) {
	if p.doc == nil {
		return nil, errNoDocument
	}
	if expr, ok := strings.CutPrefix(query, xpathPrefix); ok {
		return p.locateXPath(expr)
	}

	sel, err := cascadia.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", query, err)
	}
	var nodes []extract.Node
	p.doc.FindMatcher(sel).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, extract.TextNode(s.Text()))
	})
	return nodes, nil
}

func (p *Page) locateXPath(expr string) ([]extract.Node, error) {
	if len(p.doc.Nodes) == 0 {
		return nil, errNoDocument
	}
	found, err := htmlquery.QueryAll(p.doc.Nodes[0], expr)
	if err != nil {
		return nil, fmt.Errorf("xpath %q: %w", expr, err)
	}
	nodes := make([]extract.Node, 0, len(found))
	for _, n := range found {
		nodes = append(nodes, extract.TextNode(htmlquery.InnerText(n)))
	}
	return nodes, nil
}

// Wait is a no-op: a fetched document does not render further.
func (p *Page) Wait(time.Duration) {}

// HTML returns the loaded document. Fallback snapshots store it in place of
// a screenshot.
func (p *Page) HTML() (string, error) {
	if p.doc == nil {
		return "", errNoDocument
	}
	return p.doc.Html()
}

// Session adapts a Page to the scrape service's session contract.
type Session struct{ page *Page }

func NewSession(f Fetcher) *Session { return &Session{page: NewPage(f)} }

func (s *Session) Page() extract.Page { return s.page }
func (s *Session) Close() error       { return nil }
