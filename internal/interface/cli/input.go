package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/slackmd/slackmd/pkg/slackparse"
)

// readInput resolves the conversation text: a file argument, the system
// clipboard, or stdin, in that order of preference.
func readInput(args []string, useClipboard bool) (text string, source string, err error) {
	if useClipboard {
		text, err = clipboard.ReadAll()
		if err != nil {
			return "", "", fmt.Errorf("failed to read clipboard: %w", err)
		}
		return text, "clipboard", nil
	}

	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), "stdin", nil
}

// parseOptions builds parser options from config plus command flags. The
// --format flag wins over the config file default.
func parseOptions(formatFlag string, debug bool) *slackparse.Options {
	format := formatFlag
	if format == "" {
		format = cfg.Format
	}
	return &slackparse.Options{
		UserMap:  cfg.UserMap,
		EmojiMap: cfg.EmojiMap,
		Hint:     slackparse.ParseFormatHint(format),
		Debug:    debug,
	}
}

// parseText runs the parser, printing trace output to stderr when debug
// is on.
func parseText(text, formatFlag string, debug bool) ([]slackparse.Message, error) {
	opts := parseOptions(formatFlag, debug)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no input text")
	}
	if debug {
		messages, trace := slackparse.ParseWithTrace(text, opts)
		for _, line := range trace {
			fmt.Fprintln(os.Stderr, line)
		}
		return messages, nil
	}
	return slackparse.Parse(text, opts), nil
}
