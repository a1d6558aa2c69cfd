package browser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscraper/internal/errs"
	"trendscraper/internal/logger"
)

type fakeForm struct {
	authenticated bool
	loginWorks    bool
	askEmail      bool
	alert         string
	navErr        error

	navigated []string
	filled    map[string]string
	clicked   []string
}

func (f *fakeForm) Navigate(url string) error {
	f.navigated = append(f.navigated, url)
	return f.navErr
}

func (f *fakeForm) Wait(time.Duration) {}

func (f *fakeForm) visible([]string, time.Duration) bool { return f.authenticated }

func (f *fakeForm) fill(selector, value string, _ time.Duration) error {
	if f.filled == nil {
		f.filled = map[string]string{}
	}
	f.filled[selector] = value
	return nil
}

func (f *fakeForm) click(selector string) error {
	f.clicked = append(f.clicked, selector)
	if selector == loginButton && f.loginWorks {
		f.authenticated = true
	}
	return nil
}

func (f *fakeForm) firstVisible(selectors []string) string {
	if f.askEmail {
		return selectors[0]
	}
	return ""
}

func (f *fakeForm) alertText(string) string { return f.alert }

func newFlow(page formPage, creds Credentials) *loginFlow {
	return &loginFlow{
		log:     logger.Nop("BrowserSession"),
		page:    page,
		baseURL: "https://x.test",
		creds:   creds,
	}
}

var creds = Credentials{Username: "someone", Password: "secret", Email: "someone@example.com"}

func TestEnsure_ReusesAuthenticatedSession(t *testing.T) {
	page := &fakeForm{authenticated: true}

	require.NoError(t, newFlow(page, creds).ensure())
	assert.Equal(t, []string{"https://x.test/home"}, page.navigated)
	assert.Empty(t, page.clicked)
}

func TestEnsure_LogsIn(t *testing.T) {
	page := &fakeForm{loginWorks: true}

	require.NoError(t, newFlow(page, creds).ensure())
	assert.Equal(t, "someone", page.filled[usernameField])
	assert.Equal(t, "secret", page.filled[passwordField])
	assert.Equal(t, []string{nextButton, loginButton}, page.clicked)
	assert.Contains(t, page.navigated, "https://x.test/i/flow/login")
}

func TestEnsure_EmailVerification(t *testing.T) {
	page := &fakeForm{loginWorks: true, askEmail: true}

	require.NoError(t, newFlow(page, creds).ensure())
	assert.Equal(t, "someone@example.com", page.filled[emailFieldSelectors[0]])
	assert.Equal(t, []string{nextButton, nextButton, loginButton}, page.clicked)

	noEmail := creds
	noEmail.Email = ""
	err := newFlow(&fakeForm{askEmail: true}, noEmail).ensure()
	require.Error(t, err)
	assert.Equal(t, errs.TypeSession, errs.TypeOf(err))
}

func TestEnsure_Failures(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		err := newFlow(&fakeForm{}, Credentials{}).ensure()
		assert.Equal(t, errs.TypeSession, errs.TypeOf(err))
	})
	t.Run("rejected", func(t *testing.T) {
		err := newFlow(&fakeForm{alert: "Wrong password!"}, creds).ensure()
		require.Error(t, err)
		assert.Equal(t, errs.TypeSession, errs.TypeOf(err))
		assert.Contains(t, err.Error(), "Wrong password!")
	})
	t.Run("never authenticated", func(t *testing.T) {
		err := newFlow(&fakeForm{}, creds).ensure()
		assert.Equal(t, errs.TypeSession, errs.TypeOf(err))
	})
	t.Run("navigation", func(t *testing.T) {
		err := newFlow(&fakeForm{navErr: errors.New("timeout")}, creds).ensure()
		assert.Equal(t, errs.TypeNavigation, errs.TypeOf(err))
		assert.True(t, errs.IsRetryable(err))
	})
}
