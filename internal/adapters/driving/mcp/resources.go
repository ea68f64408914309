package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

const (
	uriScheme = "deepscout://"

	recentSearchesLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "searches",
		Name:        "searches",
		Description: "Recent searches, newest first",
		MIMEType:    "application/json",
	}, s.handleSearchesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "searches/{searchId}",
		Name:        "search",
		Description: "A search with its answer, conversation and source pages",
		MIMEType:    "application/json",
	}, s.handleSearchResource)
}

func (s *Server) handleSearchesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	searches, err := s.ports.Research.List(ctx, recentSearchesLimit)
	if err != nil {
		return nil, fmt.Errorf("listing searches: %w", err)
	}

	type searchInfo struct {
		ID    string `json:"id"`
		Query string `json:"query"`
		Mode  string `json:"mode"`
		URI   string `json:"uri"`
	}

	infos := make([]searchInfo, len(searches))
	for i := range searches {
		infos[i] = searchInfo{
			ID:    searches[i].ID,
			Query: searches[i].Query,
			Mode:  searches[i].Mode.String(),
			URI:   uriScheme + "searches/" + searches[i].ID,
		}
	}

	return jsonResult(req.Params.URI, infos)
}

func (s *Server) handleSearchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	searchID := extractSearchID(req.Params.URI)
	if searchID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	outcome, err := s.ports.Research.Get(ctx, searchID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting search: %w", err)
	}

	return jsonResult(req.Params.URI, outcome)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSearchID extracts the ID from a URI like deepscout://searches/{searchId}.
func extractSearchID(uri string) string {
	const prefix = uriScheme + "searches/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
