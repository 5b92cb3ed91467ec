package cmd

import (
	"github.com/spf13/cobra"

	pacemcp "github.com/topictracker/pace/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server for Claude Code integration",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets Claude Code read the progress snapshot, list tracker issues,
and trigger updates natively. Configure in Claude Code with:

  {
    "mcpServers": {
      "pace": { "command": "pace", "args": ["mcp"] }
    }
  }

Available tools: pace_progress_status, pace_list_phases,
pace_list_issues, pace_update_progress`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := pacemcp.NewServer(newGitHubClient(), progressFilePath())
		return srv.ServeStdio(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
