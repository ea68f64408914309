// Package fetcher retrieves page content, title and favicon for a URL.
// A direct HTTP GET is tried first; a scripted browser is the fallback.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
	"github.com/custodia-labs/deepscout/internal/logger"
	"github.com/custodia-labs/deepscout/internal/normalisers/html"
)

// Ensure Fetcher implements the interface.
var _ driven.PageFetcher = (*Fetcher)(nil)

// Defaults.
const (
	DefaultTimeout        = 10 * time.Second
	DefaultSettle         = 2 * time.Second
	DefaultScrollWait     = 500 * time.Millisecond
	DefaultIconTimeout    = 5 * time.Second
	DefaultRenderRate     = 1.0
	DefaultRenderBurst    = 2
	DefaultFaviconService = "https://www.google.com/s2/favicons?domain=%s"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	maxBodyBytes = 5 << 20
)

var errEmptyContent = errors.New("no readable content")

// Config tunes the fetcher.
type Config struct {
	// Timeout bounds each direct HTTP request (default: 10s).
	Timeout time.Duration

	// Settle is the browser wait after navigation (default: 2s).
	Settle time.Duration

	// ScrollWait is the browser pause after each scroll (default: 500ms).
	ScrollWait time.Duration

	// FaviconService is a format string taking the host (default: Google s2 favicons).
	FaviconService string

	// UserAgent is sent on direct requests.
	UserAgent string

	// RenderRate caps browser launches per second (default: 1).
	RenderRate float64

	// RenderBurst is the number of launches allowed at once (default: 2).
	RenderBurst int
}

// Fetcher implements driven.PageFetcher.
type Fetcher struct {
	client         *http.Client
	iconClient     *http.Client
	browser        driven.Browser
	settle         time.Duration
	scrollWait     time.Duration
	faviconService string
	userAgent      string
	renderLimit    *rate.Limiter
}

// New creates a fetcher. browser may be nil, which disables the fallback.
func New(browser driven.Browser, cfg Config) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Settle == 0 {
		cfg.Settle = DefaultSettle
	}
	if cfg.ScrollWait == 0 {
		cfg.ScrollWait = DefaultScrollWait
	}
	if cfg.FaviconService == "" {
		cfg.FaviconService = DefaultFaviconService
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RenderRate <= 0 {
		cfg.RenderRate = DefaultRenderRate
	}
	if cfg.RenderBurst <= 0 {
		cfg.RenderBurst = DefaultRenderBurst
	}

	return &Fetcher{
		client:         &http.Client{Timeout: cfg.Timeout},
		iconClient:     &http.Client{Timeout: DefaultIconTimeout},
		browser:        browser,
		settle:         cfg.Settle,
		scrollWait:     cfg.ScrollWait,
		faviconService: cfg.FaviconService,
		userAgent:      cfg.UserAgent,
		renderLimit:    rate.NewLimiter(rate.Limit(cfg.RenderRate), cfg.RenderBurst),
	}
}

// Fetch returns the readable content, title and favicon of rawURL.
// When neither strategy yields content the page carries a placeholder and the
// error wraps domain.ErrFetchFailed.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (domain.FetchedPage, error) {
	result := domain.FetchedPage{Title: rawURL}

	var meta *html.Page
	body, directErr := f.get(ctx, rawURL)
	if directErr == nil {
		if page, err := html.Parse(bytes.NewReader(body)); err == nil {
			meta = page
			if title := page.Title(); title != "" {
				result.Title = title
			}
		}
		result.Content = html.Extract(string(body))
		if result.Content == "" {
			directErr = errEmptyContent
		}
	}

	var browserErr error
	if directErr != nil {
		logger.Debug("direct fetch of %s failed: %v", rawURL, directErr)
		var rendered string
		rendered, browserErr = f.render(ctx, rawURL)
		if browserErr == nil {
			result.Content = html.Extract(rendered)
			if result.Content == "" {
				browserErr = errEmptyContent
			}
			if meta == nil {
				meta, _ = html.Parse(strings.NewReader(rendered))
			}
		}
	}

	result.IconURL = f.resolveIcon(ctx, rawURL, meta)

	if directErr != nil && browserErr != nil {
		result.Content = fmt.Sprintf(domain.MsgFetchFailed, rawURL)
		return result, fmt.Errorf("%w: %s: direct: %w; browser: %w",
			domain.ErrFetchFailed, rawURL, directErr, browserErr)
	}
	return result, nil
}

// get performs the direct request with browser-like headers.
func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://www.google.com/")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil && !isTextual(mediaType) {
			return nil, fmt.Errorf("unsupported content type %s", mediaType)
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func isTextual(mediaType string) bool {
	return strings.HasPrefix(mediaType, "text/") || strings.Contains(mediaType, "html") ||
		strings.Contains(mediaType, "xml")
}

func (f *Fetcher) render(ctx context.Context, rawURL string) (string, error) {
	if f.browser == nil {
		return "", domain.ErrBrowserUnavailable
	}
	// Each render starts a browser process; deep searches can ask for many at once.
	if err := f.renderLimit.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for browser slot: %w", err)
	}
	return f.browser.Render(ctx, rawURL, driven.RenderOptions{
		Settle:     f.settle,
		Scrolls:    []driven.ScrollTarget{driven.ScrollMiddle, driven.ScrollBottom},
		ScrollWait: f.scrollWait,
	})
}

// resolveIcon walks the favicon chain: declared link, /favicon.ico HEAD request,
// external favicon service, then the local placeholder.
func (f *Fetcher) resolveIcon(ctx context.Context, rawURL string, meta *html.Page) string {
	base, err := url.Parse(rawURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return domain.DefaultIconURL
	}

	if meta != nil {
		if href := meta.IconHref(); href != "" {
			if ref, err := url.Parse(href); err == nil {
				return base.ResolveReference(ref).String()
			}
		}
	}

	ico := base.ResolveReference(&url.URL{Path: "/favicon.ico"}).String()
	if f.exists(ctx, ico) {
		return ico
	}

	return fmt.Sprintf(f.faviconService, url.QueryEscape(base.Host))
}

func (f *Fetcher) exists(ctx context.Context, target string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, http.NoBody)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.iconClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
