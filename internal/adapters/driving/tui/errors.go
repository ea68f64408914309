package tui

import "errors"

// ErrMissingResearchService is returned when the research service is not provided.
var ErrMissingResearchService = errors.New("tui: research service is required")

// ErrInvalidPorts is returned when no ports are supplied.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
