// Package cli provides the deepscout command-line interface.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deepscout/internal/core/ports/driving"
	"github.com/custodia-labs/deepscout/internal/logger"
)

// BackgroundTask runs alongside long-lived commands until ctx is cancelled.
type BackgroundTask interface {
	Run(ctx context.Context) error
}

var (
	version = "dev"
	verbose bool

	researchService driving.ResearchService
	settingsService driving.SettingsService
	promptWatcher   BackgroundTask
)

var rootCmd = &cobra.Command{
	Use:   "deepscout",
	Short: "Web research with an LLM",
	Long: `DeepScout answers questions from the web.

A shallow search asks the LLM directly and lists fresh search-engine links.
A deep search expands the query, scrapes the result pages and synthesises a
report from them. Every search can be continued with follow-up questions.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline progress to stderr")
}

// SetServices injects the driving ports used by every command.
func SetServices(research driving.ResearchService, settings driving.SettingsService) {
	researchService = research
	settingsService = settings
}

// SetPromptWatcher registers the prompt reloader started by long-running commands.
func SetPromptWatcher(w BackgroundTask) {
	promptWatcher = w
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// startWatcher runs the prompt watcher until the returned stop func is called.
func startWatcher(ctx context.Context) (stop func()) {
	if promptWatcher == nil {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := promptWatcher.Run(ctx); err != nil {
			logger.Warn("prompt watcher stopped: %v", err)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
