package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.True(t, AIProviderGemini.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
}

func TestAIProvider_IsValid(t *testing.T) {
	for _, p := range AllLLMProviders() {
		assert.True(t, p.IsValid(), p)
		assert.NotEqual(t, unknownDescription, p.Description())
	}
	assert.False(t, AIProvider("bard").IsValid())
	assert.Equal(t, unknownDescription, AIProvider("bard").Description())
}

func TestAIProvider_EnvKey(t *testing.T) {
	assert.Equal(t, "GOOGLE_API_KEY", AIProviderGemini.EnvKey())
	assert.Equal(t, "", AIProviderOllama.EnvKey())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()
	assert.Equal(t, AIProviderGemini, s.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash", s.LLM.Model)
	assert.Equal(t, 5, s.Deep.SubQueries)
	assert.Equal(t, 5, s.Deep.ResultsPerQuery)
	assert.Equal(t, 30000, s.Deep.MaxContextChars)
	assert.Equal(t, 30, s.Deep.MinContentChars)
	assert.Equal(t, 10, s.MaxResults)
}
