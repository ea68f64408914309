package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

func newTestServer(t *testing.T, research *mockResearchService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Research: research})
	require.NoError(t, err)
	return server
}

func TestServer_handleShallowSearch(t *testing.T) {
	research := &mockResearchService{outcome: &domain.Outcome{
		Search: domain.Search{ID: "s1", Mode: domain.SearchModeShallow},
		Links:  []domain.Candidate{{Title: "Cake", URL: "https://cake.example"}},
		Answer: "A sweet baked food.",
	}}

	_, out, err := newTestServer(t, research).handleShallowSearch(context.Background(), nil, SearchInput{Query: "cake"})
	require.NoError(t, err)

	assert.Equal(t, "shallow", research.lastCall)
	assert.Equal(t, "cake", research.lastQuery)
	assert.Equal(t, "s1", out.SearchID)
	assert.Equal(t, "shallow", out.Mode)
	assert.Equal(t, "A sweet baked food.", out.Answer)
	assert.Equal(t, []LinkOutput{{Title: "Cake", URL: "https://cake.example"}}, out.Links)
	assert.Empty(t, out.Sources)
}

func TestServer_handleDeepSearch(t *testing.T) {
	research := &mockResearchService{outcome: &domain.Outcome{
		Search: domain.Search{ID: "d1", Mode: domain.SearchModeDeep},
		Pages: []domain.WebPage{
			{Title: "A", URL: "https://a.example", Content: "long content"},
			{Title: "B", URL: "https://b.example"},
		},
		Answer: "# Report",
	}}

	_, out, err := newTestServer(t, research).handleDeepSearch(context.Background(), nil, SearchInput{Query: "tides"})
	require.NoError(t, err)

	assert.Equal(t, "deep", research.lastCall)
	assert.Equal(t, "d1", out.SearchID)
	require.Len(t, out.Sources, 2)
	assert.Equal(t, SourceOutput{Title: "A", URL: "https://a.example"}, out.Sources[0])
}

func TestServer_handleAsk(t *testing.T) {
	research := &mockResearchService{outcome: &domain.Outcome{
		Search: domain.Search{ID: "d1", Mode: domain.SearchModeDeep},
		Answer: "Gravity.",
	}}

	_, out, err := newTestServer(t, research).handleAsk(context.Background(), nil, AskInput{SearchID: "d1", Question: "why?"})
	require.NoError(t, err)
	assert.Equal(t, "d1", research.lastID)
	assert.Equal(t, "why?", research.lastQuery)
	assert.Equal(t, "Gravity.", out.Answer)
}

func TestServer_ToolErrors(t *testing.T) {
	research := &mockResearchService{err: domain.ErrNotFound}
	server := newTestServer(t, research)
	ctx := context.Background()

	_, _, err := server.handleAsk(ctx, nil, AskInput{SearchID: "ghost", Question: "q"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	research.err = errors.New("store down")
	_, _, err = server.handleShallowSearch(ctx, nil, SearchInput{Query: "q"})
	assert.Error(t, err)
	_, _, err = server.handleDeepSearch(ctx, nil, SearchInput{Query: "q"})
	assert.Error(t, err)
}
