package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/slackmd/slackmd/internal/core/db"
	"github.com/slackmd/slackmd/pkg/slackparse"
)

// ParseConversationArgs defines arguments for the parse_conversation tool
type ParseConversationArgs struct {
	Text    string `json:"text" jsonschema:"description=Raw pasted Slack conversation text,required"`
	Format  string `json:"format,omitempty" jsonschema:"description=Header format hint: auto standard bracket or mixed"`
	Archive bool   `json:"archive,omitempty" jsonschema:"description=Store the parsed conversation in the local archive"`
	Title   string `json:"title,omitempty" jsonschema:"description=Archive title (default: first message text)"`
}

// SearchArchiveArgs defines arguments for the search_archive tool
type SearchArchiveArgs struct {
	Query string `json:"query" jsonschema:"description=Search term to match against archived message text,required"`
	Limit int    `json:"limit,omitempty" jsonschema:"description=Max number of matches to return (default: 20)"`
}

// ListConversationsArgs defines arguments for the list_conversations tool
type ListConversationsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"description=Max conversations to return (default: 20)"`
}

// ConversationSummary represents a conversation in the list view
type ConversationSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Source       string `json:"source"`
	ImportedAt   string `json:"imported_at"`
	MessageCount int    `json:"message_count"`
}

// ArchiveMatch represents a search hit in the archive
type ArchiveMatch struct {
	ConversationID    string `json:"conversation_id"`
	ConversationTitle string `json:"conversation_title"`
	Username          string `json:"username"`
	Snippet           string `json:"snippet"`
	Timestamp         string `json:"timestamp,omitempty"`
	Sequence          int    `json:"sequence"`
}

// StartServer starts the MCP server
func StartServer(dbPath string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			log.Printf("Error closing database: %v", closeErr)
		}
	}()

	s := server.NewMCPServer(
		"slackmd",
		"1.0.0",
	)

	parseTool := mcp.NewTool("parse_conversation",
		mcp.WithDescription("Parse raw pasted Slack conversation text into structured messages with usernames, timestamps, reactions, and thread markers. Optionally archives the result."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Raw pasted Slack conversation text")),
		mcp.WithString("format",
			mcp.Description("Header format hint: auto, standard, bracket, or mixed (default: auto)")),
		mcp.WithBoolean("archive",
			mcp.Description("Store the parsed conversation in the local archive")),
		mcp.WithString("title",
			mcp.Description("Archive title (default: first message text)")),
	)
	s.AddTool(parseTool, makeParseConversationHandler(database))

	searchTool := mcp.NewTool("search_archive",
		mcp.WithDescription("Full-text search over archived conversation messages."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term to match against archived message text")),
		mcp.WithNumber("limit",
			mcp.Description("Max number of matches to return (default: 20)")),
	)
	s.AddTool(searchTool, makeSearchArchiveHandler(database))

	listTool := mcp.NewTool("list_conversations",
		mcp.WithDescription("List archived conversations, most recent first."),
		mcp.WithNumber("limit",
			mcp.Description("Max conversations to return (default: 20)")),
	)
	s.AddTool(listTool, makeListConversationsHandler(database))

	return server.ServeStdio(s)
}

func makeParseConversationHandler(database *db.DB) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ParseConversationArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Text == "" {
			return mcp.NewToolResultError("text is required"), nil
		}

		opts := &slackparse.Options{
			Hint: slackparse.ParseFormatHint(args.Format),
		}
		messages := slackparse.Parse(args.Text, opts)

		result := map[string]interface{}{
			"messages":      messages,
			"message_count": len(messages),
		}

		if args.Archive && len(messages) > 0 {
			id, err := database.SaveConversation(args.Title, "mcp", opts.Hint.String(), messages)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to archive: %v", err)), nil
			}
			result["conversation_id"] = id
		}

		resultJSON, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeSearchArchiveHandler(database *db.DB) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SearchArchiveArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = 20
		}

		coreResults, err := database.Search(args.Query, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		matches := make([]ArchiveMatch, 0, len(coreResults))
		for _, r := range coreResults {
			matches = append(matches, ArchiveMatch{
				ConversationID:    r.ConversationID,
				ConversationTitle: r.ConversationTitle,
				Username:          r.Username,
				Snippet:           r.Snippet,
				Timestamp:         r.Timestamp,
				Sequence:          r.Sequence,
			})
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"matches": matches,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeListConversationsHandler(database *db.DB) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListConversationsArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = 20
		}

		convs, err := database.ListConversations(limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
		}

		summaries := make([]ConversationSummary, 0, len(convs))
		for _, c := range convs {
			summaries = append(summaries, ConversationSummary{
				ID:           c.ID,
				Title:        c.Title,
				Source:       c.Source,
				ImportedAt:   c.ImportedAt.Format("2006-01-02 15:04:05"),
				MessageCount: c.MessageCount,
			})
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"conversations": summaries,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}
