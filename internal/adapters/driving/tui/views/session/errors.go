package session

import "errors"

// ErrNoResearchService indicates that no research service was provided.
var ErrNoResearchService = errors.New("research service is required")
