package mcp

import (
	"context"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driving"
)

// mockResearchService is a mock implementation of driving.ResearchService.
type mockResearchService struct {
	outcome  *domain.Outcome
	searches []domain.Search
	err      error

	lastCall  string
	lastQuery string
	lastID    string
}

var _ driving.ResearchService = (*mockResearchService)(nil)

func (m *mockResearchService) Search(_ context.Context, query string, mode domain.SearchMode) (*domain.Outcome, error) {
	m.lastCall, m.lastQuery = "search:"+mode.String(), query
	return m.outcome, m.err
}

func (m *mockResearchService) ShallowSearch(_ context.Context, query string) (*domain.Outcome, error) {
	m.lastCall, m.lastQuery = "shallow", query
	return m.outcome, m.err
}

func (m *mockResearchService) DeepSearch(_ context.Context, query string) (*domain.Outcome, error) {
	m.lastCall, m.lastQuery = "deep", query
	return m.outcome, m.err
}

func (m *mockResearchService) Ask(_ context.Context, searchID, question string) (*domain.Outcome, error) {
	m.lastCall, m.lastID, m.lastQuery = "ask", searchID, question
	return m.outcome, m.err
}

func (m *mockResearchService) Get(_ context.Context, searchID string) (*domain.Outcome, error) {
	m.lastCall, m.lastID = "get", searchID
	return m.outcome, m.err
}

func (m *mockResearchService) List(_ context.Context, _ int) ([]domain.Search, error) {
	m.lastCall = "list"
	return m.searches, m.err
}
