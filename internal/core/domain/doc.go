// Package domain defines the core business entities for DeepScout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Search: A top-level query with its answer and conversation
//   - WebPage: A scraped source page owned by a deep Search
//   - Candidate: A transient {title, url} pair from the search engine
//   - Outcome: The envelope returned by every research operation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
