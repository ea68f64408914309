package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

var (
	llmProvider string
	llmModel    string
	llmBaseURL  string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, the API key and pipeline tuning.

Settings live in ~/.deepscout/config.toml. Environment variables
(DEEPSCOUT_API_KEY or the provider's own variable) override the stored key.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the LLM provider",
	Long: `Select the LLM provider and model. Without --provider an interactive
prompt lists the available providers. The configuration is validated
against the provider before it is saved.`,
	RunE: runSettingsLLM,
}

var settingsKeyCmd = &cobra.Command{
	Use:   "set-key [key]",
	Short: "Store the LLM API key",
	Long:  `Stores the API key. When no key is given it is read from the terminal without echo.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsKey,
}

func init() {
	settingsLLMCmd.Flags().StringVar(&llmProvider, "provider", "", "gemini, openai, anthropic or ollama")
	settingsLLMCmd.Flags().StringVar(&llmModel, "model", "", "model name (default depends on provider)")
	settingsLLMCmd.Flags().StringVar(&llmBaseURL, "base-url", "", "API endpoint override")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", settingsService.APIKeySource())
	}
	cmd.Println()

	cmd.Println("[Deep search]")
	cmd.Printf("  Sub-queries: %d\n", settings.Deep.SubQueries)
	cmd.Printf("  Results per query: %d\n", settings.Deep.ResultsPerQuery)
	cmd.Printf("  Max context chars: %d\n", settings.Deep.MaxContextChars)
	cmd.Printf("  Min content chars: %d\n", settings.Deep.MinContentChars)
	cmd.Println()

	cmd.Println("[Shallow search]")
	cmd.Printf("  Max results: %d\n", settings.MaxResults)
	cmd.Printf("  Detailed answers: %t\n", settings.DetailedAnswers)
	cmd.Println()

	cmd.Println("[Fetch]")
	cmd.Printf("  Timeout: %ds\n", settings.Fetch.TimeoutSeconds)
	cmd.Printf("  Browser settle: %ds\n", settings.Fetch.SettleSeconds)
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	provider := domain.AIProvider(llmProvider)
	model := llmModel
	if llmProvider == "" {
		provider, model = chooseLLMProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.SetLLMProvider(provider, model, llmBaseURL); err != nil {
		cmd.Println("FAILED")
		return fmt.Errorf("LLM configuration failed: %w", err)
	}
	cmd.Println("OK")

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cmd.Printf("LLM provider configured: %s (%s)\n", settings.LLM.Provider.Description(), settings.LLM.Model)
	return nil
}

func chooseLLMProvider(cmd *cobra.Command, reader *bufio.Reader) (domain.AIProvider, string) {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selected := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[selected]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}
	return selected, model
}

func runSettingsKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		cmd.Print("Enter API key: ")
		key = readPassword(cmd.InOrStdin())
		cmd.Println()
	}

	if err := settingsService.SetAPIKey(strings.TrimSpace(key)); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}
	cmd.Println("API key saved.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(bufio.NewReader(in))
}
