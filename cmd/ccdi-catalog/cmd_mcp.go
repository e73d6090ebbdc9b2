package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	catalogmcp "github.com/ccdi-federation/ccdi-catalog/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  list_entities  filter and page through subjects, samples or files
  get_entity     fetch one entity by organization, namespace and name
  count_by       group a collection by the values of one field
  summary        collection sizes

If the catalog cannot be built at startup the server still starts;
individual tool calls will return MCP error responses.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			var srv *catalogmcp.Server
			st, storeErr := newStore(logger)
			if storeErr != nil {
				logger.Error("mcp: failed to build catalog; tool calls will fail", "error", storeErr)
				srv = catalogmcp.NewServer(nil, logger, linkBaseURL(), cfg.Catalog.DefaultPerPage)
			} else {
				srv = catalogmcp.NewServer(st, logger, linkBaseURL(), cfg.Catalog.DefaultPerPage)
			}

			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: ccdi-catalog MCP server starting", "transport", "stdio")

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
