package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cinescout/cinescout/internal/config"
	"github.com/cinescout/cinescout/internal/httpclient"
	"github.com/cinescout/cinescout/internal/relay"
)

// newServeCmd returns the "serve" subcommand for running the relay service.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the relay service",
		Long: "Start the HTTP relay that forwards movie searches to TMDb and\n" +
			"exposes the generic proxy endpoint.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg.App.LogLevel)

	source := newTMDbClient(cfg, logger)
	handler := relay.NewHandler(source, logger)
	proxy := relay.NewProxy(
		httpclient.New(httpclient.DefaultConfig(), logger),
		cfg.Server.ProxyAllowedHosts,
		logger,
	)
	srv := relay.NewServer(cfg.Server.Port, handler, proxy, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return srv.Start(ctx)
}
