package services

import (
	"fmt"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
	"github.com/custodia-labs/deepscout/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyDeepSubQueries   = "deep.sub_queries"
	keyDeepResultsPerQ  = "deep.results_per_query"
	keyDeepMaxContext   = "deep.max_context_chars"
	keyDeepMinContent   = "deep.min_content_chars"
	keySearchMaxResults = "search.max_results"
	keySearchDetailed   = "search.detailed"
	keyFetchTimeout     = "fetch.timeout_seconds"
	keyBrowserSettle    = "browser.settle_seconds"
)

// defaultOllamaURL is used when switching to a local provider without a base URL.
const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	keys        *APIKeyHolder
	validator   driven.LLMValidator
}

// NewSettingsService creates a new settings service.
// keys may be nil, in which case SetAPIKey only persists the key.
func NewSettingsService(
	configStore driven.ConfigStore,
	keys *APIKeyHolder,
	validator driven.LLMValidator,
) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		keys:        keys,
		validator:   validator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(keyLLMProvider, defaults.LLM.Provider)
	model := s.configStore.GetString(keyLLMModel)
	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: provider,
			Model:    model,
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // Empty is valid for cloud providers
		},
		Deep: domain.DeepSettings{
			SubQueries:      s.getInt(keyDeepSubQueries, defaults.Deep.SubQueries),
			ResultsPerQuery: s.getInt(keyDeepResultsPerQ, defaults.Deep.ResultsPerQuery),
			MaxContextChars: s.getInt(keyDeepMaxContext, defaults.Deep.MaxContextChars),
			MinContentChars: s.getInt(keyDeepMinContent, defaults.Deep.MinContentChars),
		},
		Fetch: domain.FetchSettings{
			TimeoutSeconds: s.getInt(keyFetchTimeout, defaults.Fetch.TimeoutSeconds),
			SettleSeconds:  s.getInt(keyBrowserSettle, defaults.Fetch.SettleSeconds),
		},
		MaxResults:      s.getInt(keySearchMaxResults, defaults.MaxResults),
		DetailedAnswers: s.getBool(keySearchDetailed, defaults.DetailedAnswers),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyDeepSubQueries, settings.Deep.SubQueries},
		{keyDeepResultsPerQ, settings.Deep.ResultsPerQuery},
		{keyDeepMaxContext, settings.Deep.MaxContextChars},
		{keyDeepMinContent, settings.Deep.MinContentChars},
		{keyFetchTimeout, settings.Fetch.TimeoutSeconds},
		{keyBrowserSettle, settings.Fetch.SettleSeconds},
		{keySearchMaxResults, settings.MaxResults},
		{keySearchDetailed, settings.DetailedAnswers},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, baseURL string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: LLM provider %q", domain.ErrUnsupportedType, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	switch {
	case baseURL != "":
		settings.LLM.BaseURL = baseURL
	case provider.IsLocal():
		settings.LLM.BaseURL = defaultOllamaURL
	default:
		// Cloud providers don't need a custom base URL
		settings.LLM.BaseURL = ""
	}

	if s.validator != nil {
		if err := s.validator.ValidateLLM(&settings.LLM, s.currentKey()); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
		}
	}

	if err := s.Save(settings); err != nil {
		return err
	}
	if s.keys != nil {
		s.keys.SetProvider(provider)
	}
	return nil
}

// SetAPIKey stores the API key and makes it active immediately.
func (s *SettingsService) SetAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: API key is empty", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyLLMAPIKey, key); err != nil {
		return fmt.Errorf("save llm api_key: %w", err)
	}
	if s.keys != nil {
		s.keys.Set(key)
	}
	return nil
}

// APIKeySource describes where the active key came from.
func (s *SettingsService) APIKeySource() string {
	if s.keys == nil {
		if s.configStore.GetString(keyLLMAPIKey) != "" {
			return KeySourceFile
		}
		return KeySourceNone
	}
	return s.keys.Source()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns the config store location.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// StoredAPIKey returns the key persisted in configuration, possibly empty.
func (s *SettingsService) StoredAPIKey() string {
	return s.configStore.GetString(keyLLMAPIKey)
}

func (s *SettingsService) currentKey() string {
	if s.keys != nil {
		return s.keys.Get()
	}
	return s.configStore.GetString(keyLLMAPIKey)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
