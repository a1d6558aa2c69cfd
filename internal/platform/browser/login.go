package browser

import (
	"fmt"
	"time"

	"trendscraper/internal/errs"
	"trendscraper/internal/logger"
)

// Credentials for the site account.
type Credentials struct {
	Username string
	Password string
	Email    string
}

var loggedInIndicators = []string{
	`[aria-label*="Tweet"]`,
	`[data-testid="SideNav_AccountSwitcher_Button"]`,
	`[data-testid="SideNav_NewTweet_Button"]`,
	`[data-testid="primaryColumn"]`,
}

var emailFieldSelectors = []string{
	`input[data-testid="ocfEnterTextTextInput"]`,
	`input[name="text"]`,
	`input[autocomplete="email"]`,
	`input[type="email"]`,
	`input[placeholder*="email" i]`,
}

const (
	usernameField = `input[autocomplete="username"]`
	passwordField = `input[type="password"]`
	nextButton    = `xpath=//span[text()="Next"]`
	loginButton   = `xpath=//span[text()="Log in"]`
	loginAlert    = `[data-testid="error"], [role="alert"]`

	fieldTimeout     = 15 * time.Second
	indicatorTimeout = 3 * time.Second
)

// formPage is what the login flow needs from a page.
type formPage interface {
	Navigate(url string) error
	Wait(d time.Duration)
	visible(selectors []string, timeout time.Duration) bool
	fill(selector, value string, timeout time.Duration) error
	click(selector string) error
	firstVisible(selectors []string) string
	alertText(selector string) string
}

type loginFlow struct {
	log     *logger.Logger
	page    formPage
	baseURL string
	settle  time.Duration
	creds   Credentials
}

// ensure reuses an authenticated session or logs in.
func (f *loginFlow) ensure() error {
	home := f.baseURL + "/home"
	if err := f.page.Navigate(home); err != nil {
		return errs.NewNavigation("session", "open home", err)
	}
	f.page.Wait(f.settle)
	if f.page.visible(loggedInIndicators, indicatorTimeout) {
		f.log.LogInfof("existing session is authenticated")
		return nil
	}
	f.log.LogInfof("no authenticated session, logging in")
	return f.login()
}

func (f *loginFlow) login() error {
	if f.creds.Username == "" || f.creds.Password == "" {
		return errs.NewSession("login required but credentials are not configured", nil)
	}
	if err := f.page.Navigate(f.baseURL + "/i/flow/login"); err != nil {
		return errs.NewNavigation("session", "open login flow", err)
	}
	f.page.Wait(f.settle)

	if err := f.page.fill(usernameField, f.creds.Username, fieldTimeout); err != nil {
		return errs.NewSession("username field not found", err)
	}
	if err := f.page.click(nextButton); err != nil {
		return errs.NewSession("username step", err)
	}
	f.page.Wait(f.settle)

	// Unusual-activity check asks for the account email before the password.
	if sel := f.page.firstVisible(emailFieldSelectors); sel != "" {
		if f.creds.Email == "" {
			return errs.NewSession("email verification requested but X_EMAIL is not set", nil)
		}
		f.log.LogInfof("email verification requested, using %s", sel)
		if err := f.page.fill(sel, f.creds.Email, fieldTimeout); err != nil {
			return errs.NewSession("email field", err)
		}
		if err := f.page.click(nextButton); err != nil {
			return errs.NewSession("email step", err)
		}
		f.page.Wait(f.settle)
	}

	if err := f.page.fill(passwordField, f.creds.Password, fieldTimeout); err != nil {
		return errs.NewSession("password field not found", err)
	}
	if err := f.page.click(loginButton); err != nil {
		return errs.NewSession("password step", err)
	}
	f.page.Wait(f.settle)

	if msg := f.page.alertText(loginAlert); msg != "" {
		return errs.NewSession(fmt.Sprintf("login rejected: %s", msg), nil)
	}
	if err := f.page.Navigate(f.baseURL + "/home"); err != nil {
		return errs.NewNavigation("session", "open home after login", err)
	}
	f.page.Wait(f.settle)
	if !f.page.visible(loggedInIndicators, indicatorTimeout) {
		return errs.NewSession("login did not reach an authenticated page", nil)
	}
	f.log.LogSuccessf("logged in as %s", f.creds.Username)
	return nil
}
