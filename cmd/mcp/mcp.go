package mcp

import (
	"github.com/spf13/cobra"

	"iremember/internal/cli"
	"iremember/pkg/mcpserver"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// MCPCmd groups the MCP server operations.
var MCPCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the memory graph to MCP clients",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve read-only memory-graph tools over stdio",
	Long: `Host an MCP server on stdin/stdout so agents can inspect their own
memory graph. All tools are read-only.

Example client configuration:
  {
    "mcpServers": {
      "iremember": {
        "command": "/path/to/iremember",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	MCPCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Logs must go to a file or stderr, never stdout: stdout carries
	// the protocol.
	log, err := cli.NewLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	ctx := cmd.Context()
	store, err := cli.ConnectStore(ctx, log)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	snaps, err := cli.OpenSnapshots()
	if err != nil {
		return err
	}
	defer snaps.Close()

	server := mcpserver.New(Version, store, snaps, log)
	return server.ServeStdio()
}
