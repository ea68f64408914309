package ai

import (
	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.LLMValidator = (*ConfigValidator)(nil)

// ConfigValidator validates LLM provider configurations against the live service.
type ConfigValidator struct{}

// NewConfigValidator creates a new LLM config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateLLM pings the configured provider with apiKey.
func (v *ConfigValidator) ValidateLLM(settings *domain.LLMSettings, apiKey string) error {
	return ValidateLLMConfig(settings, apiKey)
}
