package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cinescout/cinescout/internal/config"
	"github.com/cinescout/cinescout/internal/frontend/telegram"
)

// newBotCmd returns the "bot" subcommand running the Telegram frontend.
func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Start the Telegram bot frontend",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runBot()
		},
	}
}

func runBot() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Telegram == nil {
		return fmt.Errorf("telegram is not configured, add a telegram section to the config file")
	}

	logger := config.SetupLogger(cfg.App.LogLevel)
	source := newRelayClient(cfg, logger)

	bot, err := telegram.New(cfg.Telegram.BotToken, cfg.Telegram.AllowedChatIDs, source, logger)
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting frontend", "frontend", bot.Name())
	return bot.Start(ctx)
}
