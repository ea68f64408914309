// Package tui provides an interactive terminal interface for running searches
// and continuing them as a conversation.
package tui

import (
	"github.com/custodia-labs/deepscout/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Research runs searches and follow-ups.
	Research driving.ResearchService
}

// NewPorts creates a new Ports aggregate.
func NewPorts(research driving.ResearchService) *Ports {
	return &Ports{Research: research}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Research == nil {
		return ErrMissingResearchService
	}
	return nil
}
