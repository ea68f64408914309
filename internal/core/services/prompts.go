package services

import (
	"strings"

	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
	"github.com/custodia-labs/deepscout/internal/logger"
)

// defaultPrompts are the embedded templates used when no PromptStore is
// configured or a user file is missing.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptPlain: `Answer the query: "{query}"

Instructions:
1. Detect the language of the query and answer in the same language.
2. If the query names a concept (for example "cake" or "programming"), explain what it is and give a short but informative overview, including its main kinds or categories.
3. If it is a specific question, give a clear answer with supporting details.
4. Do not use meta phrases such as "According to..." or "Based on the information...".
5. Structure the answer, using headings only when needed.
6. Keep the answer substantive but concise.
7. Do not open with "This is..." or similar generic introductions.
8. Do not use coloured hyperlinks.`,

	driven.PromptDetailed: `Give an expanded, detailed answer to the query: "{query}"

Instructions:
1. Detect the language of the query and answer in the same language.
2. Organise the answer into sections and subsections with headings.
3. Cover definitions, background, main variants and common questions where relevant.
4. Prefer concrete facts, figures and examples over general statements.
5. Do not use meta phrases such as "According to..." or "Based on the information...".
6. The answer should be noticeably longer and more thorough than a quick answer.`,

	driven.PromptReport: `Write a detailed analytical report on the topic: "{query}"

Instructions:
1. Detect the language of the topic and write the report in the same language.
2. Organise the information into a logical structure with sections and subsections.
3. Use factual information from the sources provided below.
4. Analyse different aspects of the topic, including definitions, history, variants and common questions.
5. Avoid phrases such as "According to the information provided" or "Based on the sources".
6. Do not use coloured hyperlinks.
7. Present the information objectively and with attention to detail.
8. Produce a comprehensive, informative and well-structured report.

Information from sources:
{sources}`,

	driven.PromptFollowup: `You are continuing a conversation about an earlier search.

Context:
{context}

New question: {question}

Instructions:
1. Answer in the language of the new question.
2. Use the context above as your primary source and keep the answer brief and to the point.
3. If the new question is unrelated to the context above, say so plainly, do not try to answer it, and suggest starting a new search for it.
4. Do not use meta phrases such as "According to the context".`,

	driven.PromptDeepFollowup: `Answer the question: "{question}", based on the information below.

Instructions:
1. Answer in the language of the question.
2. Use the sources and the earlier conversation below; keep the answer brief and to the point.
3. If the question is unrelated to the sources and the earlier conversation, say so plainly and suggest starting a new search instead of answering.
4. Do not use meta phrases such as "According to the sources".

Information:
{context}`,

	driven.PromptSubQueries: `Based on the query '{query}', create {count} search queries that together gather comprehensive information on it.
Return ONLY the list of queries, one per line, without numbering, bullets or explanations.
Detect the language of the query and use the same language.`,
}

// DefaultPrompts returns a copy of the embedded prompt templates.
func DefaultPrompts() map[string]string {
	out := make(map[string]string, len(defaultPrompts))
	for k, v := range defaultPrompts {
		out[k] = v
	}
	return out
}

// requiredPlaceholders are the names each template must reference.
var requiredPlaceholders = map[string][]string{
	driven.PromptPlain:        {"query"},
	driven.PromptDetailed:     {"query"},
	driven.PromptReport:       {"query", "sources"},
	driven.PromptFollowup:     {"context", "question"},
	driven.PromptDeepFollowup: {"question", "context"},
	driven.PromptSubQueries:   {"query", "count"},
}

// renderPrompt fills the {name} placeholders of a template in one pass, so
// substituted text is never expanded again and a literal "%" stays as is.
// A user template that drops a required placeholder is replaced by the default.
func renderPrompt(store driven.PromptStore, name string, vars map[string]string) string {
	tmpl := loadPrompt(store, name)
	for _, key := range requiredPlaceholders[name] {
		if !strings.Contains(tmpl, "{"+key+"}") {
			logger.Warn("prompt %q has no {%s} placeholder, using the built-in template", name, key)
			tmpl = defaultPrompts[name]
			break
		}
	}

	pairs := make([]string, 0, 2*len(vars))
	for key, val := range vars {
		pairs = append(pairs, "{"+key+"}", val)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func loadPrompt(store driven.PromptStore, name string) string {
	if store != nil {
		if prompt, err := store.Load(name); err == nil && prompt != "" {
			return prompt
		}
	}
	return defaultPrompts[name]
}
