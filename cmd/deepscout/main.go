// Command deepscout runs shallow and deep web research from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/custodia-labs/deepscout/internal/adapters/driven/ai"
	"github.com/custodia-labs/deepscout/internal/adapters/driven/config/file"
	"github.com/custodia-labs/deepscout/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/deepscout/internal/adapters/driven/web/browser"
	"github.com/custodia-labs/deepscout/internal/adapters/driven/web/duckduckgo"
	"github.com/custodia-labs/deepscout/internal/adapters/driven/web/fetcher"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/cli"
	"github.com/custodia-labs/deepscout/internal/core/services"
	"github.com/custodia-labs/deepscout/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	dir, err := file.DefaultDir()
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	validator := ai.NewConfigValidator()

	// The key holder needs the configured provider, so settings are read once without it.
	bootstrap := services.NewSettingsService(configStore, nil, validator)
	settings, err := bootstrap.Get()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	keys := services.NewAPIKeyHolder(settings.LLM.Provider, bootstrap.StoredAPIKey(), os.Getenv)
	settingsService := services.NewSettingsService(configStore, keys, validator)

	prompts, err := file.NewPromptStore(filepath.Join(dir, "prompts"), services.DefaultPrompts())
	if err != nil {
		return fmt.Errorf("open prompts: %w", err)
	}
	watcher, err := file.NewPromptWatcher(prompts)
	if err != nil {
		// Prompts still load; edits just need a restart.
		logger.Warn("prompt watcher disabled: %v", err)
	} else {
		defer watcher.Close()
		cli.SetPromptWatcher(watcher)
	}

	store, err := sqlite.NewStore(filepath.Join(dir, "data"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		return fmt.Errorf("create LLM service: %w", err)
	}
	defer llm.Close()

	chrome := browser.New(browser.Config{ExecPath: os.Getenv("DEEPSCOUT_CHROME")})
	pageFetcher := fetcher.New(chrome, fetcher.Config{
		Timeout: time.Duration(settings.Fetch.TimeoutSeconds) * time.Second,
		Settle:  time.Duration(settings.Fetch.SettleSeconds) * time.Second,
	})
	provider, err := duckduckgo.New(chrome, duckduckgo.Config{})
	if err != nil {
		return fmt.Errorf("create search provider: %w", err)
	}

	research := services.NewResearchService(
		store.SearchStore(),
		store.WebPageStore(),
		provider,
		pageFetcher,
		services.NewQueryExpander(llm, keys, prompts),
		services.NewSynthesizer(llm, keys, prompts),
		*settings,
	)

	cli.SetServices(research, settingsService)
	cli.SetVersion(version)

	return cli.Execute(ctx)
}
