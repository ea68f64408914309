package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deepscout/internal/adapters/driving/render"
	"github.com/custodia-labs/deepscout/internal/core/domain"
)

var (
	showHTML bool
	showJSON bool
)

var showCmd = &cobra.Command{
	Use:   "show [search-id]",
	Short: "Show a stored search and its conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showHTML, "html", false, "render the response as HTML")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the search as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if researchService == nil {
		return errors.New("research service not configured")
	}

	outcome, err := researchService.Get(commandContext(cmd), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return errors.New(domain.MsgSearchNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to load search: %w", err)
	}

	switch {
	case showJSON:
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal search: %w", err)
		}
		cmd.Println(string(data))
		return nil
	case showHTML:
		cmd.Println(render.MarkdownToHTML(outcome.Search.Response))
		return nil
	}

	s := outcome.Search
	cmd.Printf("Query: %s\n", s.Query)
	cmd.Printf("Mode:  %s\n", s.Mode)
	cmd.Printf("Date:  %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"))
	cmd.Println()
	cmd.Println(s.Response)
	cmd.Println()
	printSources(cmd, outcome)

	// the first two turns repeat the query and the response
	turns := s.Conversation
	if len(turns) > 2 {
		cmd.Println("Follow-ups:")
		for _, t := range turns[2:] {
			cmd.Printf("  %s: %s\n", t.Role, t.Content)
		}
	}
	return nil
}
