package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
)

// Ensure WebPageStore implements the interface.
var _ driven.WebPageStore = (*WebPageStore)(nil)

// WebPageStore is an in-memory implementation of driven.WebPageStore.
type WebPageStore struct {
	mu       sync.RWMutex
	bySearch map[string][]domain.WebPage
}

// NewWebPageStore creates a new in-memory page store.
func NewWebPageStore() *WebPageStore {
	return &WebPageStore{
		bySearch: make(map[string][]domain.WebPage),
	}
}

// Add appends a page to its search.
func (s *WebPageStore) Add(_ context.Context, page *domain.WebPage) error {
	if page == nil || page.SearchID == "" {
		return fmt.Errorf("%w: page must belong to a search", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bySearch[page.SearchID] = append(s.bySearch[page.SearchID], *page)
	return nil
}

// ListBySearch returns the pages of a search in insertion order.
func (s *WebPageStore) ListBySearch(_ context.Context, searchID string) ([]domain.WebPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pages := s.bySearch[searchID]
	result := make([]domain.WebPage, len(pages))
	copy(result, pages)
	return result, nil
}

// Count returns the number of pages stored for a search.
func (s *WebPageStore) Count(searchID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bySearch[searchID])
}
