// Package ai builds LLM service adapters from settings.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/deepscout/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/deepscout/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/deepscout/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/deepscout/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService creates the LLM service for the configured provider.
// Construction never contacts the provider; keys are supplied per call.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no LLM settings", domain.ErrInvalidInput)
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return geminillm.NewLLMService(geminillm.Config{
			Model:   settings.Model,
			BaseURL: settings.BaseURL,
		}), nil

	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	default:
		return nil, fmt.Errorf("%w: LLM provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
}

// ValidateLLMConfig creates a service for settings and pings it with apiKey.
// Providers that need a key fail fast when none is given.
func ValidateLLMConfig(settings *domain.LLMSettings, apiKey string) error {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	if settings.Provider.RequiresAPIKey() && apiKey == "" {
		return domain.ErrAPIKeyMissing
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx, apiKey)
}
