package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/slackmd/slackmd/internal/core/db"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived conversations",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of conversations to show")
}

func runList(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	convs, err := database.ListConversations(listLimit)
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}
	if len(convs) == 0 {
		fmt.Println("Archive is empty. Use \"slackmd ingest\" to add a conversation.")
		return nil
	}

	for _, c := range convs {
		fmt.Printf("%s  %-40s  %3d msg  %s\n",
			c.ID, truncate(c.Title, 40), c.MessageCount, humanize.Time(c.ImportedAt))
	}
	return nil
}

// truncate shortens display strings by rune count so multibyte titles are
// never cut mid-character.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
