// Package mcp provides an MCP (Model Context Protocol) server adapter for DeepScout.
// It lets AI assistants run shallow and deep web research and ask follow-up questions.
package mcp

import "errors"

// ErrMissingResearchService is returned when the research service is not provided.
var ErrMissingResearchService = errors.New("mcp: research service is required")
