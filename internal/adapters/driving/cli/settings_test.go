package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

func TestSettingsShow(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd("settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[LLM]")
	assert.Contains(t, out, "Google Gemini (cloud)")
	assert.Contains(t, out, "API Key: not configured")
	assert.Contains(t, out, "Sub-queries: 5")
	assert.Contains(t, out, "[Fetch]")
	assert.Contains(t, out, "Config file: /tmp/deepscout/config.toml")
}

func TestSettings_DefaultsToShow(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd("settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
}

func TestSettingsLLM_WithFlags(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd("settings", "llm", "--provider", "openai", "--model", "gpt-test")

	require.NoError(t, err)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "OpenAI (cloud) (gpt-test)")
	settings, _ := settingsService.Get()
	assert.Equal(t, domain.AIProviderOpenAI, settings.LLM.Provider)
}

func TestSettingsLLM_Interactive(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewBufferString("2\n\n"))
	rootCmd.SetArgs([]string{"settings", "llm"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	settings, _ := settingsService.Get()
	assert.Equal(t, domain.AllLLMProviders()[1], settings.LLM.Provider)
	assert.Equal(t, domain.DefaultLLMModels()[settings.LLM.Provider], settings.LLM.Model)
}

func TestSettingsLLM_ValidationFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	settingsService.(*mockSettingsService).setErr = errors.New("unreachable")

	out, err := runCmd("settings", "llm", "--provider", "ollama")

	require.Error(t, err)
	assert.Contains(t, out, "FAILED")
}

func TestSettingsSetKey_FromArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd("settings", "set-key", "  sk-test  ")

	require.NoError(t, err)
	assert.Contains(t, out, "API key saved.")
	assert.Equal(t, "sk-test", settingsService.(*mockSettingsService).key)
}

func TestSettingsSetKey_FromStdin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewBufferString("sk-piped\n"))
	rootCmd.SetArgs([]string{"settings", "set-key"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "sk-piped", settingsService.(*mockSettingsService).key)
}

func TestSettingsSetKey_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := runCmd("settings", "set-key")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{"Empty input returns default", "", 5, 1, 1},
		{"Valid choice within range", "3", 5, 1, 3},
		{"Choice below minimum returns default", "0", 5, 1, 1},
		{"Choice above maximum returns default", "6", 5, 1, 1},
		{"Invalid input returns default", "abc", 5, 2, 2},
		{"Maximum value is valid", "5", 5, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}
