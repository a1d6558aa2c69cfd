package static

import (
	"fmt"
	"time"

	"github.com/gocolly/colly"
)

// Fetcher returns the raw HTML for a URL.
type Fetcher interface {
	Fetch(url string) ([]byte, error)
}

// CollyFetcher downloads one page per call.
type CollyFetcher struct {
	UserAgent string
	Timeout   time.Duration
}

func (f CollyFetcher) Fetch(url string) ([]byte, error) {
	c := colly.NewCollector(colly.UserAgent(f.UserAgent), colly.AllowURLRevisit())
	if f.Timeout > 0 {
		c.SetRequestTimeout(f.Timeout)
	}

	var (
		body     []byte
		fetchErr error
	)
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("fetch %s (status %d): %w", url, r.StatusCode, err)
	})

	if err := c.Visit(url); err != nil && fetchErr == nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	c.Wait()
	if fetchErr != nil {
		return nil, fetchErr
	}
	return body, nil
}

// Snapshots serves pre-captured HTML keyed by URL.
type Snapshots map[string]string

func (s Snapshots) Fetch(url string) ([]byte, error) {
	html, ok := s[url]
	if !ok {
		return nil, fmt.Errorf("no snapshot for %s", url)
	}
	return []byte(html), nil
}
