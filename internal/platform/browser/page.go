package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"trendscraper/internal/core/extract"
)

const textTimeout = 2000

// Page is page access backed by a live playwright page.
type Page struct {
	page       playwright.Page
	navTimeout time.Duration
}

func newPage(p playwright.Page, navTimeout time.Duration) *Page {
	return &Page{page: p, navTimeout: navTimeout}
}

// Navigate waits for DOMContentLoaded, then retries once waiting for the full
// load event with a longer timeout.
func (p *Page) Navigate(url string) error {
	timeout := float64(p.navTimeout.Milliseconds())
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(timeout),
	})
	if err == nil {
		return nil
	}
	_, err = p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(timeout * 2),
	})
	if err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return nil
}

func (p *Page) Locate(query string) ([]extract.Node, error) {
	loc := p.page.Locator(query)
	n, err := loc.Count()
	if err != nil {
		return nil, fmt.Errorf("locate %q: %w", query, err)
	}
	nodes := make([]extract.Node, n)
	for i := 0; i < n; i++ {
		nodes[i] = node{loc: loc.Nth(i)}
	}
	return nodes, nil
}

func (p *Page) Wait(d time.Duration) { time.Sleep(d) }

// Screenshot captures the full page as PNG.
func (p *Page) Screenshot() ([]byte, error) {
	return p.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
		Type:     playwright.ScreenshotTypePng,
	})
}

// visible reports whether any selector shows up within timeout.
func (p *Page) visible(selectors []string, timeout time.Duration) bool {
	for _, sel := range selectors {
		err := p.page.Locator(sel).First().WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(float64(timeout.Milliseconds())),
		})
		if err == nil {
			return true
		}
	}
	return false
}

func (p *Page) fill(selector, value string, timeout time.Duration) error {
	loc := p.page.Locator(selector).First()
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return err
	}
	return loc.Fill(value)
}

func (p *Page) click(selector string) error {
	return p.page.Locator(selector).First().Click()
}

func (p *Page) firstVisible(selectors []string) string {
	for _, sel := range selectors {
		if ok, err := p.page.Locator(sel).First().IsVisible(); err == nil && ok {
			return sel
		}
	}
	return ""
}

func (p *Page) alertText(selector string) string {
	loc := p.page.Locator(selector).First()
	if ok, err := loc.IsVisible(); err != nil || !ok {
		return ""
	}
	text, err := loc.InnerText(playwright.LocatorInnerTextOptions{Timeout: playwright.Float(textTimeout)})
	if err != nil {
		return "login rejected"
	}
	return text
}

type node struct{ loc playwright.Locator }

func (n node) Text() (string, error) {
	return n.loc.InnerText(playwright.LocatorInnerTextOptions{Timeout: playwright.Float(textTimeout)})
}
