package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [search-id] [question]",
	Short: "Ask a follow-up question about a search",
	Long: `Answers a follow-up against an existing search.

Deep searches answer from their stored source pages; shallow searches answer
from the conversation so far plus a fresh set of search-engine links.`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the outcome as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if researchService == nil {
		return errors.New("research service not configured")
	}

	outcome, err := researchService.Ask(commandContext(cmd), args[0], args[1])
	if errors.Is(err, domain.ErrNotFound) {
		return errors.New(domain.MsgSearchNotFound)
	}
	if err != nil {
		return fmt.Errorf("follow-up failed: %w", err)
	}
	return printOutcome(cmd, outcome, askJSON)
}
