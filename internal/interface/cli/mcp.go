package cli

import (
	"fmt"

	"github.com/slackmd/slackmd/cmd/slackmd/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server exposing the parser and archive",
	Long: `Start an MCP (Model Context Protocol) server that lets MCP clients
parse pasted conversations and query the local archive.

Configure in an MCP client's config file:
  {
    "mcpServers": {
      "slackmd": {
        "command": "slackmd",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := mcp.StartServer(dbPath); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
