package cmd

import (
	"github.com/huangsam/outlier/internal/history"
	"github.com/huangsam/outlier/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [repo-path]",
	Short: "Start the Outlier MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents run churn and complexity
analysis through standard tools. Flags and config act as defaults for every tool call.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr, so stdio stays reserved for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		base := *input
		base.RepoPathStr = cfg.RepoPath
		return mcp.StartMCPServer(rootCtx, base, gitClient(), history.Manager, version)
	},
}
