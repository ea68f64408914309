package driven

import (
	"context"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

// SearchStore persists Search records.
// A committed record must be visible to a following Get on the same store.
type SearchStore interface {
	// Create inserts a new search. The ID must already be set.
	Create(ctx context.Context, search *domain.Search) error

	// Get retrieves a search by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Search, error)

	// Save replaces the stored record (response and conversation included).
	Save(ctx context.Context, search *domain.Search) error

	// List returns the most recent searches, newest first.
	List(ctx context.Context, limit int) ([]domain.Search, error)
}

// WebPageStore persists WebPage rows owned by a deep search.
type WebPageStore interface {
	// Add inserts a page. Pages are immutable once written.
	Add(ctx context.Context, page *domain.WebPage) error

	// ListBySearch returns the pages of a search in insertion order.
	ListBySearch(ctx context.Context, searchID string) ([]domain.WebPage, error)
}
