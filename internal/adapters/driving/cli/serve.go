package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deepscout/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the research operations over HTTP:

  POST /search          {"query": "...", "mode": "shallow|deep"}
  POST /ask             {"search_id": "...", "question": "..."}
  GET  /searches        recent searches (?limit=N)
  GET  /searches/:id    a search with its pages

Responses carry the markdown answer and its HTML rendering. Prompt templates
are reloaded when their files change while the server runs.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "127.0.0.1:8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if researchService == nil {
		return errors.New("research service not configured")
	}

	ctx := commandContext(cmd)
	stop := startWatcher(ctx)
	defer stop()

	server := httpapi.NewServer(researchService)
	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on http://%s\n", serveAddr)
	return server.Run(ctx, serveAddr)
}
