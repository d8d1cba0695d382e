package cli

import (
	"fmt"
	"os"

	"github.com/slackmd/slackmd/internal/core/config"
	"github.com/spf13/cobra"
)

var (
	dbPath      string
	versionInfo string
	cfg         *config.Config
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slackmd",
	Short: "Turn pasted Slack conversations into structured markdown",
	Long: `slackmd - convert copy-pasted Slack conversations into clean markdown

Paste a conversation straight from the Slack client and get back structured
messages with usernames, timestamps, reactions, and thread markers. Parsed
conversations can be archived into a local SQLite database with full-text
search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to convert from stdin if no subcommand specified
		return convertCmd.RunE(cmd, args)
	},
}

func init() {
	cfg, _ = config.Load()
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "Archive database path")
}
