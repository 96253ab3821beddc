package main

import (
	"context"
	"fmt"

	"github.com/aretw0/unitconv/internal/cli"
	"github.com/aretw0/unitconv/pkg/adapters/mcp"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the converter to AI agents as MCP tools (convert, list_modes, session_*).

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		debug, _ := cmd.Flags().GetBool("debug")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		backend, err := cli.OpenBackend(sigCtx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		var hooks []domain.LifecycleHooks
		if debug {
			hooks = append(hooks, cli.DebugHooks(logger))
		}
		converter := cli.NewConverter(backend, logger, hooks...)
		srv := mcp.NewServer(converter.Manager(), mcp.WithLogger(logger))

		// Logs go to stderr, so they never corrupt JSON-RPC on stdout.
		switch transport {
		case "stdio":
			logger.Info("Starting unitconv MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting unitconv MCP Server (SSE)", "port", port)
			if err := srv.ServeSSE(sigCtx, port); err != nil {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
