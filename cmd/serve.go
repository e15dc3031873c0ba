package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/logger"
	mcpserver "github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing lifelog
search tools for AI agents like Claude Code. The index is built from the
local store at startup; run sync or import first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Must(verbose)
		defer log.Sync()

		a, err := loadApp(log)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.rebuildIndex(cmd.Context()); err != nil {
			// An empty or failed index is not fatal for the protocol server;
			// searches degrade to empty results until the next sync.
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: index build failed: %v\n", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "Search results will be empty. Run `limitless-mcp sync` first.\n")
		}

		mcpserver.Version = Version
		srv := mcpserver.NewServer(a.engine, a.store, log)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
