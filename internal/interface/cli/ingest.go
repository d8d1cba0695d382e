package cli

import (
	"fmt"

	"github.com/slackmd/slackmd/internal/core/db"
	"github.com/spf13/cobra"
)

var (
	ingestClipboard bool
	ingestTitle     string
	ingestFormat    string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Parse a conversation and archive it",
	Long: `Parse a pasted conversation and store the structured messages in the
local archive database.

The conversation gets a ULID identifier and becomes searchable with
"slackmd search". Without --title the first message text is used.

Examples:
  pbpaste | slackmd ingest
  slackmd ingest conversation.txt --title "deploy retro"
  slackmd ingest --clipboard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().BoolVarP(&ingestClipboard, "clipboard", "c", false, "Read input from the system clipboard")
	ingestCmd.Flags().StringVarP(&ingestTitle, "title", "t", "", "Conversation title (default: first message text)")
	ingestCmd.Flags().StringVar(&ingestFormat, "format", "", "Header format hint: auto, standard, bracket, mixed")
}

func runIngest(cmd *cobra.Command, args []string) error {
	text, source, err := readInput(args, ingestClipboard)
	if err != nil {
		return err
	}

	messages, err := parseText(text, ingestFormat, false)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return fmt.Errorf("no messages found in input")
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	opts := parseOptions(ingestFormat, false)
	id, err := database.SaveConversation(ingestTitle, source, opts.Hint.String(), messages)
	if err != nil {
		return fmt.Errorf("failed to archive conversation: %w", err)
	}

	fmt.Printf("Archived %d message(s) as %s\n", len(messages), id)
	return nil
}
