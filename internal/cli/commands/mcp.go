package commands

import (
	"github.com/spf13/cobra"

	"github.com/kobaltcore/renutil/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long:  "Start a Model Context Protocol server exposing instance management to AI agents over stdio",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	manager, err := createManager()
	if err != nil {
		return err
	}

	server := mcp.NewServer(manager, Version)
	return server.Start(cmd.Context())
}
