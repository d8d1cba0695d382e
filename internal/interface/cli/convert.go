package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/slackmd/slackmd/internal/core/render"
	"github.com/spf13/cobra"
)

var (
	convertClipboard bool
	convertCopy      bool
	convertJSON      bool
	convertOutput    string
	convertFormat    string
	convertTitle     string
	convertDebug     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a pasted Slack conversation to markdown",
	Long: `Convert a pasted Slack conversation into structured markdown.

Reads from a file argument, the system clipboard (--clipboard), or stdin.
Output goes to stdout by default; use --output to write a file or --copy
to place the result back on the clipboard.

Examples:
  pbpaste | slackmd convert
  slackmd convert conversation.txt
  slackmd convert --clipboard --copy
  slackmd convert conversation.txt --json
  slackmd convert conversation.txt -o standup.md --format bracket`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().BoolVarP(&convertClipboard, "clipboard", "c", false, "Read input from the system clipboard")
	convertCmd.Flags().BoolVar(&convertCopy, "copy", false, "Copy the converted output to the clipboard")
	convertCmd.Flags().BoolVar(&convertJSON, "json", false, "Emit parsed messages as JSON instead of markdown")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Write output to a file instead of stdout")
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "Header format hint: auto, standard, bracket, mixed")
	convertCmd.Flags().StringVarP(&convertTitle, "title", "t", "", "Document title; adds a YAML frontmatter block")
	convertCmd.Flags().BoolVar(&convertDebug, "debug", false, "Print per-line parser diagnostics to stderr")
}

func runConvert(cmd *cobra.Command, args []string) error {
	text, _, err := readInput(args, convertClipboard)
	if err != nil {
		return err
	}

	messages, err := parseText(text, convertFormat, convertDebug)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return fmt.Errorf("no messages found in input")
	}

	var out string
	if convertJSON {
		data, err := json.MarshalIndent(messages, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal messages: %w", err)
		}
		out = string(data) + "\n"
	} else if convertTitle != "" {
		out = render.Document(messages, cfg.Template, convertTitle)
	} else {
		out = render.Markdown(messages, cfg.Template)
	}

	if convertCopy {
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("failed to write clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Copied %d message(s) to clipboard\n", len(messages))
		return nil
	}

	if convertOutput != "" {
		path := convertOutput
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d message(s) to %s\n", len(messages), path)
		return nil
	}

	fmt.Print(out)
	return nil
}
