package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/slackmd/slackmd/internal/core/db"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive statistics",
	Long: `Display statistics about the conversation archive.

Shows conversation and message counts, reaction coverage, attribution
quality, and import date range.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	stats, err := database.GetStats()
	if err != nil {
		return fmt.Errorf("failed to gather stats: %w", err)
	}

	fmt.Println("Archive Statistics")
	fmt.Println("==================")
	fmt.Println()
	fmt.Printf("Conversations:       %d\n", stats.TotalConversations)
	fmt.Printf("Messages:            %d\n", stats.TotalMessages)
	fmt.Printf("With Reactions:      %d\n", stats.TotalReacted)
	fmt.Printf("Unattributed:        %d\n", stats.UnknownAuthored)

	if stats.TotalConversations > 0 {
		fmt.Println()
		if !stats.OldestImport.IsZero() {
			fmt.Printf("Oldest Import:       %s\n", humanize.Time(stats.OldestImport))
		}
		if !stats.NewestImport.IsZero() {
			fmt.Printf("Newest Import:       %s\n", humanize.Time(stats.NewestImport))
		}
		if stats.MostActiveUser != "" {
			fmt.Printf("Most Active Author:  %s (%d messages)\n", stats.MostActiveUser, stats.MostActiveCount)
		}
	}
	return nil
}
