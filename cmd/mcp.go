package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yungngaew/gitlab-dashboard/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the gldash MCP server",
	Long:  `Launch an MCP server that allows AI agents to generate reports, issue analytics, team analytics and trends via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Validation output must not pollute stdio, which carries the
		// MCP protocol itself.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
