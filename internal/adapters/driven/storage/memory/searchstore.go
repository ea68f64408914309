package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
)

// Ensure SearchStore implements the interface.
var _ driven.SearchStore = (*SearchStore)(nil)

// SearchStore is an in-memory implementation of driven.SearchStore.
// Records are stored as clones so callers never share state with the store.
type SearchStore struct {
	mu       sync.RWMutex
	searches map[string]domain.Search
	order    []string
}

// NewSearchStore creates a new in-memory search store.
func NewSearchStore() *SearchStore {
	return &SearchStore{
		searches: make(map[string]domain.Search),
	}
}

// Create inserts a new search.
func (s *SearchStore) Create(_ context.Context, search *domain.Search) error {
	if search == nil || search.ID == "" {
		return fmt.Errorf("%w: search ID is required", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.searches[search.ID]; exists {
		return fmt.Errorf("%w: search %s already exists", domain.ErrInvalidInput, search.ID)
	}
	s.searches[search.ID] = search.Clone()
	s.order = append(s.order, search.ID)
	return nil
}

// Get retrieves a search by ID.
func (s *SearchStore) Get(_ context.Context, id string) (*domain.Search, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	search, ok := s.searches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := search.Clone()
	return &out, nil
}

// Save replaces an existing search.
func (s *SearchStore) Save(_ context.Context, search *domain.Search) error {
	if search == nil {
		return fmt.Errorf("%w: search is nil", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.searches[search.ID]; !ok {
		return domain.ErrNotFound
	}
	s.searches[search.ID] = search.Clone()
	return nil
}

// List returns up to limit searches, newest first. A non-positive limit returns all.
func (s *SearchStore) List(_ context.Context, limit int) ([]domain.Search, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Search, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		result = append(result, s.searches[s.order[i]].Clone())
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
