package browser

import (
	"math/rand"

	"github.com/playwright-community/playwright-go"
)

// HeaderProfile is a coherent set of request headers for one device.
type HeaderProfile struct {
	UserAgent       string
	AcceptLanguage  string
	SecChUa         string
	SecChUaMobile   string
	SecChUaPlatform string
	Viewport        playwright.Size
	Mobile          bool
}

// ProfileStrategy selects a family of header profiles.
type ProfileStrategy string

const (
	StrategyDesktop ProfileStrategy = "desktop"
	StrategyMobile  ProfileStrategy = "mobile"
)

var desktopProfiles = []HeaderProfile{
	{
		UserAgent:       "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		AcceptLanguage:  "en-US,en;q=0.9",
		SecChUa:         `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`,
		SecChUaMobile:   "?0",
		SecChUaPlatform: `"macOS"`,
		Viewport:        playwright.Size{Width: 1440, Height: 900},
	},
	{
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		AcceptLanguage:  "en-US,en;q=0.9",
		SecChUa:         `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`,
		SecChUaMobile:   "?0",
		SecChUaPlatform: `"Windows"`,
		Viewport:        playwright.Size{Width: 1920, Height: 1080},
	},
}

var mobileProfiles = []HeaderProfile{
	{
		UserAgent:       "Mozilla/5.0 (Linux; Android 14; Pixel 8 Pro) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Mobile Safari/537.36",
		AcceptLanguage:  "en-US,en;q=0.9",
		SecChUa:         `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`,
		SecChUaMobile:   "?1",
		SecChUaPlatform: `"Android"`,
		Viewport:        playwright.Size{Width: 412, Height: 915},
		Mobile:          true,
	},
	{
		UserAgent:      "Mozilla/5.0 (iPhone; CPU iPhone OS 18_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.2 Mobile/15E148 Safari/604.1",
		AcceptLanguage: "en-US,en;q=0.9",
		SecChUaMobile:  "?1",
		Viewport:       playwright.Size{Width: 390, Height: 844},
		Mobile:         true,
	},
}

// GetHeaderProfile returns a random profile for strategy.
func GetHeaderProfile(strategy ProfileStrategy) HeaderProfile {
	switch strategy {
	case StrategyMobile:
		return mobileProfiles[rand.Intn(len(mobileProfiles))]
	default:
		return desktopProfiles[rand.Intn(len(desktopProfiles))]
	}
}

// GetAllStrategies returns strategies in order of preference. Trend panels
// render in the desktop sidebar, so desktop goes first.
func GetAllStrategies() []ProfileStrategy {
	return []ProfileStrategy{StrategyDesktop, StrategyMobile}
}

// Headers returns the extra HTTP headers for the profile.
func (p HeaderProfile) Headers() map[string]string {
	h := map[string]string{
		"Accept-Language":           p.AcceptLanguage,
		"Upgrade-Insecure-Requests": "1",
	}
	if p.SecChUa != "" {
		h["Sec-Ch-Ua"] = p.SecChUa
		h["Sec-Ch-Ua-Platform"] = p.SecChUaPlatform
	}
	if p.SecChUaMobile != "" {
		h["Sec-Ch-Ua-Mobile"] = p.SecChUaMobile
	}
	return h
}

// ContextOptions builds browser context options for the profile.
func (p HeaderProfile) ContextOptions() playwright.BrowserNewContextOptions {
	viewport := p.Viewport
	return playwright.BrowserNewContextOptions{
		UserAgent:        playwright.String(p.UserAgent),
		ExtraHttpHeaders: p.Headers(),
		Viewport:         &viewport,
		IsMobile:         playwright.Bool(p.Mobile),
		HasTouch:         playwright.Bool(p.Mobile),
		Locale:           playwright.String("en-US"),
	}
}
