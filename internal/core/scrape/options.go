package scrape

import (
	"context"

	"trendscraper/internal/config"
	"trendscraper/internal/core/extract"
	"trendscraper/internal/core/pipeline"
	"trendscraper/internal/errs"
	"trendscraper/internal/platform/browser"
	"trendscraper/internal/platform/static"
)

// PipelineConfig builds the fixed pipeline configuration from the environment.
func PipelineConfig(cfg config.Config) (pipeline.Config, error) {
	pc := pipeline.DefaultConfig(cfg.SiteBaseURL)
	pc.SettleDelay = cfg.SettleDelay
	pc.Strict = cfg.StrictFinalize
	if cfg.StrategiesFile != "" {
		set, err := extract.LoadStrategies(cfg.StrategiesFile)
		if err != nil {
			return pipeline.Config{}, errs.NewConfig("STRATEGIES_FILE", err)
		}
		pc.Strategies = set
	}
	return pc, nil
}

// OpenerFor picks the page driver named by BROWSER_DRIVER.
func OpenerFor(cfg config.Config) (SessionOpener, error) {
	switch cfg.BrowserDriver {
	case config.DriverPlaywright:
		return BrowserOpener(browser.Options{
			BaseURL:    cfg.SiteBaseURL,
			Headless:   cfg.BrowserHeadless,
			NavTimeout: cfg.NavTimeout,
			Settle:     cfg.SettleDelay,
			Credentials: browser.Credentials{
				Username: cfg.XUsername,
				Password: cfg.XPassword,
				Email:    cfg.XEmail,
			},
		}), nil
	case config.DriverStatic:
		return StaticOpener(static.CollyFetcher{
			UserAgent: browser.GetHeaderProfile(browser.StrategyDesktop).UserAgent,
			Timeout:   cfg.NavTimeout,
		}), nil
	default:
		return nil, errs.NewConfig("unknown BROWSER_DRIVER "+cfg.BrowserDriver, nil)
	}
}

func BrowserOpener(opts browser.Options) SessionOpener {
	return func(context.Context) (Session, error) {
		s, err := browser.Open(opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func StaticOpener(f static.Fetcher) SessionOpener {
	return func(context.Context) (Session, error) {
		return static.NewSession(f), nil
	}
}
