package driving

import (
	"context"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

// ResearchService answers queries and follow-up questions.
type ResearchService interface {
	// Search dispatches to ShallowSearch or DeepSearch by mode.
	Search(ctx context.Context, query string, mode domain.SearchMode) (*domain.Outcome, error)

	// ShallowSearch answers with one LLM call plus fresh search-engine links.
	ShallowSearch(ctx context.Context, query string) (*domain.Outcome, error)

	// DeepSearch runs the scrape-and-synthesise pipeline. The returned outcome
	// carries the new search ID, which is the handle for later retrieval.
	DeepSearch(ctx context.Context, query string) (*domain.Outcome, error)

	// Ask answers a follow-up question against an existing search.
	// Returns domain.ErrNotFound if the search does not exist.
	Ask(ctx context.Context, searchID, question string) (*domain.Outcome, error)

	// Get retrieves a search with its pages.
	Get(ctx context.Context, searchID string) (*domain.Outcome, error)

	// List returns recent searches, newest first.
	List(ctx context.Context, limit int) ([]domain.Search, error)
}
