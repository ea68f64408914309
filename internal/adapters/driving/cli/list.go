package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "maximum number of searches")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if researchService == nil {
		return errors.New("research service not configured")
	}

	searches, err := researchService.List(commandContext(cmd), listLimit)
	if err != nil {
		return fmt.Errorf("failed to list searches: %w", err)
	}
	if len(searches) == 0 {
		cmd.Println("No searches yet.")
		return nil
	}

	for i := range searches {
		s := &searches[i]
		cmd.Printf("%s  %-7s  %s  %s\n",
			s.ID, s.Mode, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Query)
	}
	return nil
}
