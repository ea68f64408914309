package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

// SearchInput is the input schema for the search tools.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the question or topic to research"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	SearchID string `json:"search_id" jsonschema:"id returned by shallow_search or deep_search"`
	Question string `json:"question" jsonschema:"follow-up question about that search"`
}

// ResearchOutput is the output schema shared by all tools.
type ResearchOutput struct {
	SearchID string         `json:"search_id"`
	Mode     string         `json:"mode"`
	Answer   string         `json:"answer"`
	Sources  []SourceOutput `json:"sources,omitempty"`
	Links    []LinkOutput   `json:"links,omitempty"`
}

// SourceOutput is a page a deep report was built from.
type SourceOutput struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// LinkOutput is a search-engine result.
type LinkOutput struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "shallow_search",
		Description: "Answer a query directly with the LLM and list related web links",
	}, s.handleShallowSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "deep_search",
		Description: "Research a query across many web pages and return a structured report. Slow.",
	}, s.handleDeepSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a follow-up question about an earlier search",
	}, s.handleAsk)
}

func (s *Server) handleShallowSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, ResearchOutput, error) {
	outcome, err := s.ports.Research.ShallowSearch(ctx, input.Query)
	if err != nil {
		return nil, ResearchOutput{}, err
	}
	return nil, toOutput(outcome), nil
}

func (s *Server) handleDeepSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, ResearchOutput, error) {
	outcome, err := s.ports.Research.DeepSearch(ctx, input.Query)
	if err != nil {
		return nil, ResearchOutput{}, err
	}
	return nil, toOutput(outcome), nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, ResearchOutput, error) {
	outcome, err := s.ports.Research.Ask(ctx, input.SearchID, input.Question)
	if err != nil {
		return nil, ResearchOutput{}, err
	}
	return nil, toOutput(outcome), nil
}

func toOutput(outcome *domain.Outcome) ResearchOutput {
	out := ResearchOutput{
		SearchID: outcome.Search.ID,
		Mode:     outcome.Search.Mode.String(),
		Answer:   outcome.Answer,
	}
	for _, p := range outcome.Pages {
		out.Sources = append(out.Sources, SourceOutput{Title: p.Title, URL: p.URL})
	}
	for _, l := range outcome.Links {
		out.Links = append(out.Links, LinkOutput{Title: l.Title, URL: l.URL})
	}
	return out
}
