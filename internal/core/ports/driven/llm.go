package driven

import (
	"context"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

// LLMService provides language model generation.
// The API key is supplied per call so that a key changed at runtime
// takes effect on the next request without rebuilding the service.
//
// Implementations may include:
//   - Google Gemini
//   - OpenAI (GPT-4o, GPT-4o-mini)
//   - Anthropic (Claude)
//   - Ollama (local models, key ignored)
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, apiKey, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable with the given key.
	Ping(ctx context.Context, apiKey string) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}

// LLMValidator checks LLM configurations against the live provider.
type LLMValidator interface {
	// ValidateLLM creates a service for the settings and pings it with apiKey.
	ValidateLLM(settings *domain.LLMSettings, apiKey string) error
}
