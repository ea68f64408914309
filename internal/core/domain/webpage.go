package domain

import "time"

// DefaultIconURL is the local placeholder used when no favicon can be resolved.
const DefaultIconURL = "/static/default-favicon.png"

// WebPage is a scraped source page owned by a deep Search.
// Rows are immutable once written.
type WebPage struct {
	ID        string    `json:"id"`
	SearchID  string    `json:"search_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	IconURL   string    `json:"icon_url"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// FetchedPage is what the page fetcher returns for a URL.
type FetchedPage struct {
	Content string
	Title   string
	IconURL string
}

// PageResult is the tagged outcome of processing one URL in a batch.
// Exactly one of Page or Err is meaningful.
type PageResult struct {
	URL     string
	Page    *WebPage
	Err     error
	Skipped bool
}

// OK reports whether the URL produced a persisted page.
func (r PageResult) OK() bool {
	return r.Err == nil && !r.Skipped && r.Page != nil
}
