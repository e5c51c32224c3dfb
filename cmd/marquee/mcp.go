package main

import (
	"context"

	"github.com/aretw0/marquee/internal/cli"
	"github.com/aretw0/marquee/pkg/runner"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [show]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Plays the show and lets AI agents drive it through MCP tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		sm := runner.NewSignalManager(context.Background())
		defer sm.Stop()
		return cli.ServeMCP(sm.Context(), playbackOptions(cmd, args), transport, port)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	addPlaybackFlags(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
