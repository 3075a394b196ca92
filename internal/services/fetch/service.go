// Package fetch retrieves pages over HTTP and extracts the structured
// content that processors score against.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/httpclient"
	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
	"github.com/ternarybob/sitescore/internal/retry"
)

// Service fetches pages with rate limiting and retry, then extracts
// content with goquery.
type Service struct {
	client    *http.Client
	limiter   *rate.Limiter
	policy    *retry.Policy
	logger    arbor.ILogger
	userAgent string
	maxBody   int64
	converter *md.Converter
}

var _ interfaces.ContentFetcher = (*Service)(nil)

// NewService creates a fetch service from the fetcher configuration
func NewService(config common.FetcherConfig, logger arbor.ILogger) *Service {
	rps := config.RequestsPerSec
	if rps <= 0 {
		rps = 2
	}

	return &Service{
		client:    httpclient.New(config.RequestTimeout),
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		policy:    retry.NewPolicyWithAttempts(config.MaxAttempts),
		logger:    logger,
		userAgent: config.UserAgent,
		maxBody:   int64(config.MaxBodySize),
		converter: md.NewConverter("", true, nil),
	}
}

// FetchPage downloads a page and extracts its content
func (s *Service) FetchPage(ctx context.Context, pageURL string) (*models.PageContent, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var page *models.PageContent
	err := s.policy.Do(ctx, s.logger, "fetch_page", func() error {
		fetched, err := s.fetchOnce(ctx, pageURL)
		if err != nil {
			return err
		}
		page = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("url", pageURL).
		Int("status", page.StatusCode).
		Int("word_count", page.WordCount).
		Dur("duration", page.FetchDuration).
		Msg("Page fetched")

	return page, nil
}

// Probe reports whether a URL responds with a 2xx status
func (s *Service) Probe(ctx context.Context, probeURL string) bool {
	if err := s.limiter.Wait(ctx); err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (s *Service) fetchOnce(ctx context.Context, pageURL string) (*models.PageContent, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch %s: server error status %d", pageURL, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch %s: not found or rejected, status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", pageURL, err)
	}

	page, err := s.extract(pageURL, string(body))
	if err != nil {
		return nil, err
	}

	page.StatusCode = resp.StatusCode
	page.PageSize = len(body)
	page.FetchDuration = time.Since(start)
	page.FetchedAt = time.Now().UTC()
	return page, nil
}

// extract parses HTML and builds the PageContent structure
func (s *Service) extract(pageURL, html string) (*models.PageContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", pageURL, err)
	}

	page := &models.PageContent{URL: pageURL}

	page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		page.MetaDescription = strings.TrimSpace(desc)
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		level := int(sel.Get(0).Data[1] - '0')
		page.Headings = append(page.Headings, models.Heading{
			Level: level,
			Text:  strings.TrimSpace(sel.Text()),
		})
	})

	base, _ := url.Parse(pageURL)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := ref
		if base != nil {
			resolved = base.ResolveReference(ref)
		}
		if base != nil && resolved.Host == base.Host {
			page.InternalLinks++
		} else {
			page.ExternalLinks++
		}
	})

	doc.Find(`meta[name="viewport"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if content, ok := sel.Attr("content"); ok && strings.Contains(content, "width") {
			page.HasViewport = true
			return false
		}
		return true
	})

	bodySel := doc.Find("body").Clone()
	bodySel.Find("script, style, noscript").Remove()
	page.Text = normalizeWhitespace(bodySel.Text())
	page.WordCount = len(strings.Fields(page.Text))

	if markdown, err := s.converter.ConvertString(html); err == nil {
		page.Markdown = markdown
	} else {
		s.logger.Warn().Str("url", pageURL).Err(err).Msg("Markdown conversion failed")
	}

	return page, nil
}

func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// RootProbeURLs returns the robots.txt and sitemap.xml URLs for a site URL
func RootProbeURLs(siteURL string) (robotsURL, sitemapURL string, err error) {
	parsed, err := url.Parse(siteURL)
	if err != nil || parsed.Host == "" {
		return "", "", fmt.Errorf("invalid site url: %s", siteURL)
	}
	root := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	return root + "/robots.txt", root + "/sitemap.xml", nil
}
