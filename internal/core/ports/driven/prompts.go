package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names. Templates reference values as {name} placeholders,
// in any order; the ones listed for each prompt are required.
const (
	// PromptPlain answers a query directly. Uses {query}.
	PromptPlain = "plain"

	// PromptDetailed asks for an expanded, structured answer. Uses {query}.
	PromptDetailed = "detailed"

	// PromptReport builds a deep-search report. Uses {query} and {sources}.
	PromptReport = "report"

	// PromptFollowup answers a follow-up question. Uses {context} and {question}.
	PromptFollowup = "followup"

	// PromptDeepFollowup answers a follow-up from stored sources. Uses {question} and {context}.
	PromptDeepFollowup = "deep_followup"

	// PromptSubQueries expands a query. Uses {query} and {count}.
	PromptSubQueries = "sub_queries"
)

// AllPrompts lists every well-known prompt name.
func AllPrompts() []string {
	return []string{PromptPlain, PromptDetailed, PromptReport, PromptFollowup, PromptDeepFollowup, PromptSubQueries}
}
