// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SearchStore: Search record persistence
//   - WebPageStore: WebPage persistence, queried by owning search
//   - SearchProvider: Web search engine results via a scripted browser
//   - PageFetcher: Page content, title and favicon for a URL
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model generation. Without it every answer is the
//     key-not-configured message and deep searches end with no content.
//   - PromptStore: Customisable prompt templates. Without it embedded defaults are used.
//   - Browser: Scripted browser. Without it the fetcher has no fallback and
//     the search provider returns no results.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
