package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/lectern/internal/cli"
	"github.com/aretw0/lectern/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes deck generation as MCP tools for AI agents.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		outDir, _ := cmd.Flags().GetString("output-dir")

		// Stdout carries JSON-RPC on stdio.
		log.SetOutput(os.Stderr)
		logger := newLogger(cfg)

		ctx := cmd.Context()
		rt, err := cli.NewRuntime(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		opts := []mcp.Option{mcp.WithLogger(logger)}
		if outDir != "" {
			opts = append(opts, mcp.WithOutputDir(outDir))
		}
		srv := mcp.NewServer(rt.Service, opts...)

		switch transport {
		case "stdio":
			logger.Info("Starting Lectern MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting Lectern MCP server (SSE)", "port", port)
			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP server stopped")
			return nil
		}
		return fmt.Errorf("unknown transport %q: supported are stdio and sse", transport)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().String("output-dir", "", "Directory for generated decks (default: system temp dir)")
}
