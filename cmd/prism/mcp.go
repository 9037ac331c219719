package main

import (
	"github.com/spf13/cobra"

	"github.com/halcyonlabs/prism/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long: `Starts a Model Context Protocol server exposing prism's analyses
as tools (analyze_project, tree_shake, find_cycles, impact_analysis,
largest_symbols). Intended to be launched by an MCP client.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.NewServer(version).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
