package domain

// User-facing texts. Callers render these verbatim, so they are part of the
// observable contract of the research service.
const (
	// MsgKeyNotConfigured is returned instead of an LLM answer when no API key is set.
	MsgKeyNotConfigured = "Error: the LLM API key is not configured."

	// MsgReportKeyNotConfigured replaces a deep report when no API key is set.
	MsgReportKeyNotConfigured = "Error: the LLM API key is not configured. The report cannot be generated."

	// MsgSearchInProgress is the placeholder response of a deep search being processed.
	MsgSearchInProgress = "Search in progress..."

	// MsgSearchNotFound is shown when a follow-up names an unknown search.
	MsgSearchNotFound = "Error: search not found."

	// MsgNoContent explains a deep search that accepted no pages.
	MsgNoContent = `Could not collect enough information to build a report.

Possible causes:
- The search engine returned no results for the generated queries.
- The result pages blocked automated access or required JavaScript that failed to load.
- The pages contained too little readable text.
- The LLM API key is missing, so no search queries could be generated.

What you can try:
- Rephrase the query with more specific or more common terms.
- Run a shallow search for a quick answer instead.
- Check your network connection and the configured API key, then try again.`

	// MsgSynthesisFailed is the format for a failed report. It takes the error
	// description and an excerpt of the aggregated content.
	MsgSynthesisFailed = "Error: the report could not be generated: %s\n\nCollected content excerpt:\n\n%s"

	// MsgFetchFailed is the placeholder content for a URL no strategy could load.
	MsgFetchFailed = "Could not load content from %s."
)
