package cli

import (
	"fmt"
	"strings"

	"github.com/slackmd/slackmd/internal/core/db"
	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search archived conversations using full-text search",
	Long: `Search message text across all archived conversations.

Uses FTS5 full-text search with porter stemming for natural language.
Queries containing operator characters fall back to exact substring
matching.

Examples:
  slackmd search "deploy rollback"
  slackmd search incident --limit 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 50, "Maximum number of matches to show")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	results, err := database.Search(query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Printf("No results found for: %s\n", query)
		return nil
	}

	fmt.Printf("Found %d match(es) for: %s\n\n", len(results), query)

	lastConv := ""
	for _, r := range results {
		if r.ConversationID != lastConv {
			fmt.Printf("=== %s (%s) ===\n", r.ConversationTitle, r.ConversationID)
			lastConv = r.ConversationID
		}
		header := r.Username
		if r.Timestamp != "" {
			header += " @ " + r.Timestamp
		}
		fmt.Printf("  [%d] %s\n      %s\n", r.Sequence, header, truncate(r.Snippet, 200))
	}
	return nil
}
