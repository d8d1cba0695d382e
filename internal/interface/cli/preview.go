package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/slackmd/slackmd/pkg/slackparse"
	"github.com/spf13/cobra"
)

var (
	previewClipboard bool
	previewFormat    string
)

var (
	usernameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	unknownStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	reactionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	threadStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("6"))
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Preview how a pasted conversation will be parsed",
	Long: `Parse a conversation and show the structured result in the terminal
without converting or archiving anything.

Useful for checking attribution before running convert or ingest.

Examples:
  pbpaste | slackmd preview
  slackmd preview conversation.txt
  slackmd preview --clipboard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().BoolVarP(&previewClipboard, "clipboard", "c", false, "Read input from the system clipboard")
	previewCmd.Flags().StringVar(&previewFormat, "format", "", "Header format hint: auto, standard, bracket, mixed")
}

func runPreview(cmd *cobra.Command, args []string) error {
	text, source, err := readInput(args, previewClipboard)
	if err != nil {
		return err
	}

	messages, err := parseText(text, previewFormat, false)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return fmt.Errorf("no messages found in input")
	}

	for i, m := range messages {
		header := usernameStyle.Render(m.Username)
		if m.Username == slackparse.UnknownUser {
			header = unknownStyle.Render(m.Username)
		}
		if m.Timestamp != "" {
			header += " " + timestampStyle.Render(formatPreviewTime(m.Timestamp))
		}
		fmt.Println(header)

		for _, line := range strings.Split(m.Text, "\n") {
			fmt.Printf("  %s\n", line)
		}
		if len(m.Reactions) > 0 {
			parts := make([]string, 0, len(m.Reactions))
			for _, r := range m.Reactions {
				parts = append(parts, fmt.Sprintf("%s %d", r.Name, r.Count))
			}
			fmt.Printf("  %s\n", reactionStyle.Render(strings.Join(parts, "  ")))
		}
		if m.ThreadInfo != "" {
			fmt.Printf("  %s\n", threadStyle.Render(m.ThreadInfo))
		}
		if i < len(messages)-1 {
			fmt.Println()
		}
	}

	fmt.Println()
	fmt.Println(summaryStyle.Render(fmt.Sprintf("%d message(s) from %s, %s of input",
		len(messages), source, humanize.Bytes(uint64(len(text))))))
	return nil
}

// formatPreviewTime shows normalized timestamps as relative time and
// passes unnormalized ones through untouched.
func formatPreviewTime(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return humanize.Time(t)
	}
	return ts
}
