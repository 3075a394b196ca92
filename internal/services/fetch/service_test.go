package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/sitescore/internal/common"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title>Best Coffee Brewing Guide</title>
<meta name="description" content="Learn how to brew great coffee at home.">
<meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
<h1>Coffee Brewing</h1>
<h2>Pour Over</h2>
<h3>Grind Size</h3>
<h2>French Press</h2>
<p>Brewing coffee well takes practice and good beans.</p>
<a href="/guides/espresso">Espresso guide</a>
<a href="https://example.org/roasters">Roasters</a>
<a href="#top">Top</a>
<script>console.log("ignored")</script>
</body>
</html>`

func newTestService(t *testing.T) *Service {
	t.Helper()
	config := common.FetcherConfig{
		UserAgent:      "sitescore-test/1.0",
		RequestTimeout: 5 * time.Second,
		MaxBodySize:    1024 * 1024,
		RequestsPerSec: 100,
		MaxAttempts:    2,
	}
	return NewService(config, common.GetLogger())
}

func TestFetchPageExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	svc := newTestService(t)
	page, err := svc.FetchPage(context.Background(), server.URL+"/brewing")
	require.NoError(t, err)

	assert.Equal(t, "Best Coffee Brewing Guide", page.Title)
	assert.Equal(t, "Learn how to brew great coffee at home.", page.MetaDescription)
	assert.True(t, page.HasViewport)

	require.Len(t, page.Headings, 4)
	assert.Equal(t, 1, page.Headings[0].Level)
	assert.Equal(t, "Coffee Brewing", page.Headings[0].Text)
	assert.Equal(t, 1, page.H1Count())
	assert.True(t, page.HasLogicalHeadingFlow())

	// Fragment link excluded; same-host link internal; example.org external
	assert.Equal(t, 1, page.InternalLinks)
	assert.Equal(t, 1, page.ExternalLinks)

	assert.Greater(t, page.WordCount, 5)
	assert.NotContains(t, page.Text, "console.log")
	assert.NotEmpty(t, page.Markdown)
	assert.Greater(t, page.PageSize, 0)
}

func TestFetchPageRetriesServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	svc := newTestService(t)
	svc.policy.InitialBackoff = time.Millisecond

	page, err := svc.FetchPage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "Best Coffee Brewing Guide", page.Title)
}

func TestFetchPageNotFoundFailsFast(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := newTestService(t)
	svc.policy.InitialBackoff = time.Millisecond

	_, err := svc.FetchPage(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nAllow: /"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := newTestService(t)
	assert.True(t, svc.Probe(context.Background(), server.URL+"/robots.txt"))
	assert.False(t, svc.Probe(context.Background(), server.URL+"/sitemap.xml"))
}

func TestRootProbeURLs(t *testing.T) {
	robots, sitemap, err := RootProbeURLs("https://example.com/some/page")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/robots.txt", robots)
	assert.Equal(t, "https://example.com/sitemap.xml", sitemap)

	_, _, err = RootProbeURLs("not a url")
	assert.Error(t, err)
}
