// Package browser renders pages in headless Chrome through chromedp.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
	"github.com/custodia-labs/deepscout/internal/logger"
)

// Ensure Chrome implements the interface.
var _ driven.Browser = (*Chrome)(nil)

// Defaults.
const (
	DefaultTimeout   = 45 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// Config holds headless Chrome options.
type Config struct {
	// ExecPath points at the Chrome binary. Empty lets chromedp search the usual locations.
	ExecPath string

	// UserAgent overrides the browser user agent.
	UserAgent string

	// Timeout bounds a whole Render call (default: 45s).
	Timeout time.Duration
}

// Chrome starts a fresh headless browser for every Render call.
type Chrome struct {
	opts    []chromedp.ExecAllocatorOption
	timeout time.Duration
}

// New creates a Chrome renderer. No process is started until Render.
func New(cfg Config) *Chrome {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.UserAgent(cfg.UserAgent),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	return &Chrome{opts: opts, timeout: cfg.Timeout}
}

// Render loads url, waits, scrolls and returns the rendered document HTML.
// The browser process is torn down before Render returns, on every path.
func (c *Chrome) Render(ctx context.Context, url string, opts driven.RenderOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	// An empty Run launches the browser, separating startup failures from page failures.
	if err := chromedp.Run(taskCtx); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrBrowserUnavailable, err)
	}

	var doc string
	if err := chromedp.Run(taskCtx, actions(url, opts, &doc)...); err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	logger.Debug("rendered %s (%d bytes)", url, len(doc))
	return doc, nil
}

func actions(url string, opts driven.RenderOptions, doc *string) []chromedp.Action {
	list := []chromedp.Action{chromedp.Navigate(url)}
	if opts.Settle > 0 {
		list = append(list, chromedp.Sleep(opts.Settle))
	}
	for _, target := range opts.Scrolls {
		list = append(list, chromedp.Evaluate(scrollScript(target), nil))
		if opts.ScrollWait > 0 {
			list = append(list, chromedp.Sleep(opts.ScrollWait))
		}
	}
	return append(list, chromedp.OuterHTML("html", doc, chromedp.ByQuery))
}

func scrollScript(target driven.ScrollTarget) string {
	switch target {
	case driven.ScrollMiddle:
		return "window.scrollTo(0, document.body.scrollHeight / 2);"
	default:
		return "window.scrollTo(0, document.body.scrollHeight);"
	}
}
