package mcp

import (
	"github.com/custodia-labs/deepscout/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Research runs searches and follow-ups.
	Research driving.ResearchService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Research == nil {
		return ErrMissingResearchService
	}
	return nil
}
