package static

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscraper/internal/core/extract"
	"trendscraper/internal/core/pipeline"
	"trendscraper/internal/logger"
)

const base = "https://x.test"

const explorePage = `<!doctype html>
<html><body>
<div data-testid="primaryColumn">
  <div data-testid="cellInnerDiv">
    <div data-testid="trend">
      <span>Trending in United States</span>
      <span>#Bitcoin</span>
      <span>29.6K posts</span>
    </div>
  </div>
  <div data-testid="cellInnerDiv">
    <div data-testid="trend">
      <span>Technology · Trending</span>
      <span>#OpenAI</span>
      <span>12K posts</span>
    </div>
  </div>
  <div data-testid="cellInnerDiv">
    <div data-testid="trend">
      <span>Sports · Trending</span>
      <span>Elon Musk</span>
      <span>4 hours ago</span>
    </div>
  </div>
  <div data-testid="cellInnerDiv"><a href="/i/trends"><span>Show more</span></a></div>
</div>
<div data-testid="sidebarColumn">
  <div role="link"><span>#AI</span></div>
  <div role="link"><span>Create account</span></div>
</div>
<footer><a href="/tos">Terms of Service</a></footer>
</body></html>`

func loadedPage(t *testing.T) *Page {
	t.Helper()
	p := NewPage(Snapshots{base + "/explore": explorePage})
	p.log = logger.Nop("StaticPage")
	require.NoError(t, p.Navigate(base+"/explore"))
	return p
}

func texts(t *testing.T, nodes []extract.Node) []string {
	t.Helper()
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		s, err := n.Text()
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

func TestLocate_CSS(t *testing.T) {
	p := loadedPage(t)

	nodes, err := p.Locate(`[data-testid="trend"] span`)
	require.NoError(t, err)
	assert.Len(t, nodes, 9)

	nodes, err = p.Locate(`[data-testid="sidebarColumn"] [role="link"] span`)
	require.NoError(t, err)
	assert.Equal(t, []string{"#AI", "Create account"}, texts(t, nodes))
}

func TestLocate_XPath(t *testing.T) {
	p := loadedPage(t)

	nodes, err := p.Locate(`xpath=//div[@data-testid="sidebarColumn"]//span`)
	require.NoError(t, err)
	assert.Equal(t, []string{"#AI", "Create account"}, texts(t, nodes))

	_, err = p.Locate(`xpath=//div[`)
	assert.Error(t, err)
}

func TestLocate_UnsupportedSelector(t *testing.T) {
	p := loadedPage(t)

	_, err := p.Locate(`[role="link"]:has-text("Show more")`)
	assert.Error(t, err)
}

func TestLocate_BeforeNavigate(t *testing.T) {
	p := NewPage(Snapshots{})
	_, err := p.Locate("span")
	assert.ErrorIs(t, err, errNoDocument)
}

func TestNavigate_MissingSnapshot(t *testing.T) {
	p := NewPage(Snapshots{})
	assert.Error(t, p.Navigate(base+"/nowhere"))
}

func TestPipelineOverSnapshot(t *testing.T) {
	cfg := pipeline.DefaultConfig(base)
	cfg.SettleDelay = 0
	session := NewSession(Snapshots{
		base + "/explore": explorePage,
	})
	session.page.log = logger.Nop("StaticPage")

	res, err := pipeline.New(cfg, logger.Nop("Pipeline")).Run(session.Page())
	require.NoError(t, err)

	assert.Len(t, res.Trends, 5)
	assert.Equal(t, []string{"#Bitcoin", "#OpenAI", "#AI", "Elon Musk"}, res.Trends[:4])
	assert.NotContains(t, res.Trends, "Create account")
	assert.NoError(t, session.Close())
}
