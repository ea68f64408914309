// Package duckduckgo implements the search provider against DuckDuckGo's
// script-rendered results page.
package duckduckgo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
	"github.com/custodia-labs/deepscout/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.SearchProvider = (*Provider)(nil)

// Defaults.
const (
	DefaultBaseURL    = "https://duckduckgo.com"
	DefaultScrollWait = time.Second

	// ResultSelector locates result title anchors on the rendered page.
	ResultSelector = "article[data-nrn='result'] a[data-testid='result-title-a']"
)

// Config tunes the provider.
type Config struct {
	// BaseURL is the search engine origin (default: https://duckduckgo.com).
	BaseURL string

	// ScrollWait is the pause after each of the two scrolls (default: 1s).
	ScrollWait time.Duration
}

// Provider drives a browser through DuckDuckGo searches.
type Provider struct {
	browser    driven.Browser
	baseURL    *url.URL
	scrollWait time.Duration
}

// New creates a DuckDuckGo provider using browser for every query.
func New(browser driven.Browser, cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ScrollWait == 0 {
		cfg.ScrollWait = DefaultScrollWait
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base URL: %w", domain.ErrInvalidInput, err)
	}
	return &Provider{browser: browser, baseURL: base, scrollWait: cfg.ScrollWait}, nil
}

// Search renders the results page and returns up to maxResults candidates in page order.
func (p *Provider) Search(ctx context.Context, query string, maxResults int) ([]domain.Candidate, error) {
	if maxResults <= 0 || strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if p.browser == nil {
		return nil, domain.ErrBrowserUnavailable
	}

	target := p.queryURL(query)
	logger.Debug("searching %s", target)

	doc, err := p.browser.Render(ctx, target, driven.RenderOptions{
		Scrolls:    []driven.ScrollTarget{driven.ScrollBottom, driven.ScrollBottom},
		ScrollWait: p.scrollWait,
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results, err := ParseResults(doc, p.baseURL, maxResults)
	if err != nil {
		return results, fmt.Errorf("parse results for %q: %w", query, err)
	}
	logger.Debug("query %q returned %d results", query, len(results))
	return results, nil
}

func (p *Provider) queryURL(query string) string {
	u := *p.baseURL
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery = url.Values{"q": {query}}.Encode()
	return u.String()
}

// ParseResults extracts result titles and links from a rendered results page.
// Entries without a title or link are skipped; relative links resolve against base.
func ParseResults(page string, base *url.URL, maxResults int) ([]domain.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var results []domain.Candidate
	doc.Find(ResultSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.Join(strings.Fields(s.Text()), " ")
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if title == "" || href == "" {
			return true
		}
		if ref, err := url.Parse(href); err == nil && base != nil {
			href = base.ResolveReference(ref).String()
		}
		results = append(results, domain.Candidate{Title: title, URL: href})
		return len(results) < maxResults
	})
	return results, nil
}
