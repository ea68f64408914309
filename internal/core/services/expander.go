package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
)

// QueryExpander asks the LLM for variants of a query.
type QueryExpander struct {
	llm     driven.LLMService
	keys    *APIKeyHolder
	prompts driven.PromptStore
}

// NewQueryExpander creates an expander. prompts may be nil to use defaults.
func NewQueryExpander(llm driven.LLMService, keys *APIKeyHolder, prompts driven.PromptStore) *QueryExpander {
	return &QueryExpander{
		llm:     llm,
		keys:    keys,
		prompts: prompts,
	}
}

// Expand returns at most count sub-queries for query.
// On any failure it returns no sub-queries and the error; callers treat
// that as an empty expansion rather than searching for error text.
func (e *QueryExpander) Expand(ctx context.Context, query string, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}
	if e.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if e.keys != nil && !e.keys.Configured() {
		return nil, domain.ErrAPIKeyMissing
	}

	prompt := renderPrompt(e.prompts, driven.PromptSubQueries,
		map[string]string{"query": query, "count": strconv.Itoa(count)})

	apiKey := ""
	if e.keys != nil {
		apiKey = e.keys.Get()
	}

	out, err := e.llm.Generate(ctx, apiKey, prompt, driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("expand query: %w", err)
	}
	return filterSubQueries(out, count), nil
}

// filterSubQueries splits LLM output into clean, distinct queries.
// List markers and wrapping quotes are stripped, blank and heading lines
// dropped, and duplicates removed case-insensitively. At most limit remain.
func filterSubQueries(raw string, limit int) []string {
	seen := make(map[string]bool)
	var out []string

	for _, line := range strings.Split(raw, "\n") {
		q := cleanSubQuery(line)
		// Blank lines and preambles such as "Here are the queries:".
		if q == "" || strings.HasSuffix(q, ":") {
			continue
		}
		key := strings.ToLower(q)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out
}

func cleanSubQuery(line string) string {
	s := strings.TrimSpace(line)
	s = stripListMarker(s)
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("\"'`«»“”", r)
	})
}

// stripListMarker removes one leading bullet ("-", "*", "•") or number
// ("1.", "2)", "3:", "10 -"). A marker only counts when whitespace follows,
// so "3-D printing" and "1.5 degrees" keep their text.
func stripListMarker(s string) string {
	for _, bullet := range []string{"-", "*", "•"} {
		if rest, ok := strings.CutPrefix(s, bullet); ok && startsWithSpace(rest) {
			s = strings.TrimSpace(rest)
			break
		}
	}

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return s
	}
	j := i
	for j < len(s) && s[j] == ' ' {
		j++
	}
	if j < len(s) && strings.IndexByte(".):-", s[j]) >= 0 && (j+1 == len(s) || startsWithSpace(s[j+1:])) {
		return strings.TrimSpace(s[j+1:])
	}
	return s
}

func startsWithSpace(s string) bool {
	return s == "" || s[0] == ' ' || s[0] == '\t'
}
