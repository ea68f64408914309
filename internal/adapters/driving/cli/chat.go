package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:     "chat [search-id]",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface.

Without arguments a menu offers a quick answer, deep research or the search
history. With a search ID the conversation for that search opens directly.

Controls:
  Enter     - Search / ask follow-up
  Tab       - Switch shallow/deep before the first query
  PgUp/PgDn - Scroll the transcript
  Ctrl+N    - New search
  Esc       - Back to menu
  Ctrl+C    - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newChatApp(cmd, args)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	stop := startWatcher(ctx)
	defer stop()

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func newChatApp(cmd *cobra.Command, args []string) (*tui.App, error) {
	app, err := tui.NewApp(tui.NewPorts(researchService))
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(commandContext(cmd))
	if len(args) == 1 {
		app.WithSearch(args[0])
	}
	return app, nil
}
