package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

// SearchProvider runs a query against a web search engine.
type SearchProvider interface {
	// Search returns at most maxResults candidates in engine order.
	// Results collected before a failure are returned together with the error,
	// so callers may log the error and still use the partial results.
	Search(ctx context.Context, query string, maxResults int) ([]domain.Candidate, error)
}

// PageFetcher retrieves readable content for a URL.
type PageFetcher interface {
	// Fetch returns the extracted content, title and favicon of a page.
	// When every strategy fails the returned page carries placeholder content
	// naming the URL and the error wraps domain.ErrFetchFailed.
	Fetch(ctx context.Context, url string) (domain.FetchedPage, error)
}

// ScrollTarget is a vertical scroll position in a rendered page.
type ScrollTarget string

// Scroll positions.
const (
	ScrollMiddle ScrollTarget = "middle"
	ScrollBottom ScrollTarget = "bottom"
)

// RenderOptions drives a scripted browser visit.
type RenderOptions struct {
	// Settle is the wait after navigation before scrolling.
	Settle time.Duration

	// Scrolls are applied in order, each followed by ScrollWait.
	Scrolls []ScrollTarget

	// ScrollWait is the pause after each scroll.
	ScrollWait time.Duration
}

// Browser renders pages in a headless browser.
// Each Render call owns a browser session that is torn down before it returns.
type Browser interface {
	// Render loads url, applies opts and returns the rendered document HTML.
	Render(ctx context.Context, url string, opts RenderOptions) (string, error)
}
