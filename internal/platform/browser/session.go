// Package browser drives chromium through playwright for trend scraping.
package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"trendscraper/internal/core/extract"
	"trendscraper/internal/errs"
	"trendscraper/internal/logger"
)

type Options struct {
	BaseURL     string
	Headless    bool
	NavTimeout  time.Duration
	Settle      time.Duration
	Credentials Credentials
}

// Session owns one browser, one context and one authenticated page.
type Session struct {
	log     *logger.Logger
	opts    Options
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    *Page
}

// Open launches chromium and bootstraps an authenticated page, trying each
// header profile strategy until one reaches the site. Session errors such as
// rejected credentials are not retried.
func Open(opts Options) (*Session, error) {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}
	s := &Session{log: logger.New("BrowserSession"), opts: opts}

	pw, err := playwright.Run()
	if err != nil {
		return nil, errs.NewNavigation("session", "playwright initialization failed", err)
	}
	s.pw = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--disable-blink-features=AutomationControlled",
			"--no-first-run",
			"--disable-default-apps",
			"--disable-extensions",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, errs.NewNavigation("session", "browser launch failed", err)
	}
	s.browser = browser

	var lastErr error
	for i, strategy := range GetAllStrategies() {
		s.log.Info().Int("attempt", i+1).Str("strategy", string(strategy)).Msg("opening browser context")

		if err := s.openContext(strategy); err != nil {
			lastErr = err
			continue
		}
		flow := &loginFlow{
			log:     s.log,
			page:    s.page,
			baseURL: opts.BaseURL,
			settle:  opts.Settle,
			creds:   opts.Credentials,
		}
		err := flow.ensure()
		if err == nil {
			return s, nil
		}
		lastErr = err
		s.log.Warn().Str("strategy", string(strategy)).Err(err).Msg("session bootstrap failed")
		_ = s.context.Close()
		s.context, s.page = nil, nil
		if errs.TypeOf(err) == errs.TypeSession {
			break
		}
	}

	_ = s.Close()
	return nil, fmt.Errorf("all profile strategies exhausted: %w", lastErr)
}

func (s *Session) openContext(strategy ProfileStrategy) error {
	ctx, err := s.browser.NewContext(GetHeaderProfile(strategy).ContextOptions())
	if err != nil {
		return errs.NewNavigation("session", "new context", err)
	}
	page, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		return errs.NewNavigation("session", "new page", err)
	}
	s.context = ctx
	s.page = newPage(page, s.opts.NavTimeout)
	return nil
}

// Page returns the authenticated page.
func (s *Session) Page() extract.Page { return s.page }

func (s *Session) Close() error {
	if s.context != nil {
		_ = s.context.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.pw != nil {
		return s.pw.Stop()
	}
	return nil
}
