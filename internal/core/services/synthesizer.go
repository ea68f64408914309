package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
	"github.com/custodia-labs/deepscout/internal/logger"
)

// SynthesisMode selects the prompt template used to build an answer.
type SynthesisMode string

// Synthesis modes.
const (
	// SynthesisPlain is a direct answer to the query.
	SynthesisPlain SynthesisMode = "plain"

	// SynthesisDetailed is an expanded, structured answer.
	SynthesisDetailed SynthesisMode = "detailed"

	// SynthesisReport is a structured report grounded in collected sources.
	SynthesisReport SynthesisMode = "report"

	// SynthesisFollowup answers a question against a prior context.
	SynthesisFollowup SynthesisMode = "followup"

	// SynthesisDeepFollowup answers a question from the stored sources of a deep search.
	SynthesisDeepFollowup SynthesisMode = "deep_followup"
)

// Synthesizer turns queries and collected context into LLM answers.
type Synthesizer struct {
	llm     driven.LLMService
	keys    *APIKeyHolder
	prompts driven.PromptStore
}

// NewSynthesizer creates a synthesiser. prompts may be nil to use defaults.
func NewSynthesizer(llm driven.LLMService, keys *APIKeyHolder, prompts driven.PromptStore) *Synthesizer {
	return &Synthesizer{
		llm:     llm,
		keys:    keys,
		prompts: prompts,
	}
}

// BuildPrompt renders the template for mode.
// For SynthesisReport, background holds the source aggregate;
// for the follow-up modes, query is the new question and background the history.
func (s *Synthesizer) BuildPrompt(mode SynthesisMode, query, background string) (string, error) {
	switch mode {
	case SynthesisPlain:
		return renderPrompt(s.prompts, driven.PromptPlain, map[string]string{"query": query}), nil
	case SynthesisDetailed:
		return renderPrompt(s.prompts, driven.PromptDetailed, map[string]string{"query": query}), nil
	case SynthesisReport:
		return renderPrompt(s.prompts, driven.PromptReport,
			map[string]string{"query": query, "sources": background}), nil
	case SynthesisFollowup:
		return renderPrompt(s.prompts, driven.PromptFollowup,
			map[string]string{"question": query, "context": background}), nil
	case SynthesisDeepFollowup:
		return renderPrompt(s.prompts, driven.PromptDeepFollowup,
			map[string]string{"question": query, "context": background}), nil
	default:
		return "", fmt.Errorf("%w: synthesis mode %q", domain.ErrUnsupportedType, mode)
	}
}

// Generate builds the prompt and calls the LLM.
// Returns domain.ErrAPIKeyMissing without calling the LLM when no key is configured.
func (s *Synthesizer) Generate(ctx context.Context, mode SynthesisMode, query, background string) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}
	if s.keys != nil && !s.keys.Configured() {
		return "", domain.ErrAPIKeyMissing
	}

	prompt, err := s.BuildPrompt(mode, query, background)
	if err != nil {
		return "", err
	}

	apiKey := ""
	if s.keys != nil {
		apiKey = s.keys.Get()
	}

	out, err := s.llm.Generate(ctx, apiKey, prompt, driven.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("generate %s answer: %w", mode, err)
	}
	return strings.TrimSpace(out), nil
}

// Synthesize is Generate with failures rendered as display text.
// It never returns an empty string for a failure.
func (s *Synthesizer) Synthesize(ctx context.Context, mode SynthesisMode, query, background string) string {
	out, err := s.Generate(ctx, mode, query, background)
	if err == nil {
		return out
	}
	if errors.Is(err, domain.ErrAPIKeyMissing) {
		return domain.MsgKeyNotConfigured
	}
	logger.Error("synthesis (%s) failed: %v", mode, err)
	return "Error: " + err.Error()
}
