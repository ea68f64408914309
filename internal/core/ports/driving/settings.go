package driving

import "github.com/custodia-labs/deepscout/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, baseURL string) error

	// SetAPIKey stores the API key and makes it active immediately.
	SetAPIKey(key string) error

	// APIKeySource describes where the active key came from.
	APIKeySource() string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ConfigPath is the file settings are persisted to.
	ConfigPath() string
}
