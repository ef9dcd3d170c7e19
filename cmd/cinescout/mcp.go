package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cinescout/cinescout/internal/config"
	"github.com/cinescout/cinescout/internal/mcp"
)

// newMCPServeCmd returns the "mcp-serve" subcommand exposing search tools
// over the Model Context Protocol on stdio.
func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-serve",
		Short: "Start the MCP server on stdio",
		Long: "Start a Model Context Protocol server on stdin/stdout.\n" +
			"Exposes search_movies, discover_movies and list_genres tools\n" +
			"for AI assistants to call.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMCP()
		},
	}
}

func runMCP() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg.App.LogLevel)
	source := newTMDbClient(cfg, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting MCP server", "transport", "stdio")
	return mcp.NewServer(source, logger).ServeStdio(ctx)
}
