package domain

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini is the Google Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p != AIProviderOllama
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// EnvKey returns the provider-specific environment variable holding an API key.
func (p AIProvider) EnvKey() string {
	switch p {
	case AIProviderGemini:
		return "GOOGLE_API_KEY"
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
// The API key is not part of it; see the key holder in services.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible APIs).
	BaseURL string
}

// DeepSettings tunes the deep-search pipeline.
type DeepSettings struct {
	// SubQueries is how many query variants the expander asks for.
	SubQueries int

	// ResultsPerQuery caps search results per sub-query.
	ResultsPerQuery int

	// MaxContextChars bounds the aggregate passed to the synthesiser.
	MaxContextChars int

	// MinContentChars is the acceptance threshold for trimmed page content.
	MinContentChars int
}

// FetchSettings tunes page retrieval.
type FetchSettings struct {
	// TimeoutSeconds bounds each direct HTTP call.
	TimeoutSeconds int

	// SettleSeconds is the scripted-browser wait after navigation.
	SettleSeconds int
}

// AppSettings holds all application settings.
type AppSettings struct {
	LLM LLMSettings

	Deep DeepSettings

	Fetch FetchSettings

	// MaxResults caps shallow-search links.
	MaxResults int

	// DetailedAnswers selects the expanded prompt for shallow answers.
	DetailedAnswers bool
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider: AIProviderGemini,
			Model:    DefaultLLMModels()[AIProviderGemini],
		},
		Deep: DeepSettings{
			SubQueries:      5,
			ResultsPerQuery: 5,
			MaxContextChars: 30000,
			MinContentChars: 30,
		},
		Fetch: FetchSettings{
			TimeoutSeconds: 10,
			SettleSeconds:  2,
		},
		MaxResults: 10,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini:    "gemini-2.0-flash",
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}
