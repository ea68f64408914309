package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

var (
	searchDeep bool
	searchMode string
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Research a query on the web",
	Long: `Runs a shallow search by default: one LLM answer plus fresh search-engine links.

With --deep the query is expanded into sub-queries, result pages are fetched
(falling back to a headless browser) and a report is synthesised from them.
Deep searches take minutes rather than seconds.

The printed search ID can be passed to 'deepscout ask' for follow-ups.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchDeep, "deep", false, "run the deep scrape-and-synthesise pipeline")
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", "", "search mode: shallow or deep")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the outcome as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if researchService == nil {
		return errors.New("research service not configured")
	}

	mode, err := domain.ParseSearchMode(searchMode)
	if err != nil {
		return err
	}
	if searchDeep {
		mode = domain.SearchModeDeep
	}

	outcome, err := researchService.Search(commandContext(cmd), args[0], mode)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return printOutcome(cmd, outcome, searchJSON)
}

func printOutcome(cmd *cobra.Command, outcome *domain.Outcome, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal outcome: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(outcome.Answer)
	cmd.Println()
	printSources(cmd, outcome)
	cmd.Printf("Search ID: %s (%s)\n", outcome.Search.ID, outcome.Search.Mode)
	return nil
}

func printSources(cmd *cobra.Command, outcome *domain.Outcome) {
	if len(outcome.Pages) > 0 {
		cmd.Println("Sources:")
		for i := range outcome.Pages {
			cmd.Printf("  [%d] %s\n      %s\n", i+1, outcome.Pages[i].Title, outcome.Pages[i].URL)
		}
		cmd.Println()
	}
	if len(outcome.Links) > 0 {
		cmd.Println("Links:")
		for i, l := range outcome.Links {
			cmd.Printf("  [%d] %s\n      %s\n", i+1, l.Title, l.URL)
		}
		cmd.Println()
	}
}
