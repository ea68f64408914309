package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLMService implements driven.LLMService for testing.
// Responses are returned in order; the last one repeats.
type mockLLMService struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
	keys      []string
}

func (m *mockLLMService) Generate(_ context.Context, apiKey, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.keys = append(m.keys, apiKey)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	idx := len(m.prompts) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], nil
}

func (m *mockLLMService) ModelName() string { return "mock-model" }

func (m *mockLLMService) Ping(_ context.Context, _ string) error { return m.err }

func (m *mockLLMService) Close() error { return nil }

func (m *mockLLMService) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *mockLLMService) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// mockSearchProvider implements driven.SearchProvider for testing.
type mockSearchProvider struct {
	results map[string][]domain.Candidate
	errs    map[string]error
	queries []string
	limits  []int
}

func (m *mockSearchProvider) Search(_ context.Context, query string, maxResults int) ([]domain.Candidate, error) {
	m.queries = append(m.queries, query)
	m.limits = append(m.limits, maxResults)
	res := m.results[query]
	if len(res) > maxResults {
		res = res[:maxResults]
	}
	return res, m.errs[query]
}

// mockFetcher implements driven.PageFetcher for testing.
type mockFetcher struct {
	pages   map[string]domain.FetchedPage
	errs    map[string]error
	panics  map[string]bool
	fetched []string
}

func (m *mockFetcher) Fetch(_ context.Context, url string) (domain.FetchedPage, error) {
	m.fetched = append(m.fetched, url)
	if m.panics[url] {
		panic("boom")
	}
	if err, ok := m.errs[url]; ok {
		return domain.FetchedPage{
			Content: fmt.Sprintf(domain.MsgFetchFailed, url),
			Title:   url,
			IconURL: domain.DefaultIconURL,
		}, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	page, ok := m.pages[url]
	if !ok {
		return domain.FetchedPage{}, fmt.Errorf("%w: unknown url", domain.ErrFetchFailed)
	}
	return page, nil
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	reloads int
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("not found")
}

func (m *mockPromptStore) Reload() { m.reloads++ }

func longText(word string) string {
	return strings.Repeat(word+" ", 20)
}
