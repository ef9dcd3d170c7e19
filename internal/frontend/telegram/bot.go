// Package telegram is the Telegram frontend: plain text messages run title
// searches against the relay and inline keyboard buttons page through the
// results.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/cinescout/cinescout/internal/core"
	"github.com/cinescout/cinescout/internal/metadata/tmdb"
	"github.com/cinescout/cinescout/internal/search"
)

// Bot is the Telegram frontend for CineScout.
type Bot struct {
	api      *tgbotapi.BotAPI
	sessions *sessionManager
	source   core.MovieSource
	logger   *slog.Logger
}

var _ core.Frontend = (*Bot)(nil)

// New creates a new Telegram Bot backed by the given movie source.
func New(token string, allowedChatIDs []int64, source core.MovieSource, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		api:      api,
		sessions: newSessionManager(allowedChatIDs),
		source:   source,
		logger:   logger,
	}, nil
}

// Name returns the frontend name.
func (b *Bot) Name() string { return "telegram" }

// Start starts the long-polling loop. It blocks until ctx is canceled.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("telegram bot started",
		slog.String("username", b.api.Self.UserName),
	)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram bot stopped")
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches an incoming Telegram update.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// session returns the chat's search session, populating the genre cache on
// first use.
func (b *Bot) session(ctx context.Context, chatID int64) *search.Session {
	s, created := b.sessions.getOrCreate(chatID, func() *search.Session {
		return search.NewSession(b.logger)
	})
	if created {
		s.LoadGenres(ctx, b.source)
	}
	return s
}

// sendText sends a plain text message (no parse mode).
func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

// sendMarkdown sends a MarkdownV2 message, retrying without markup if
// Telegram rejects it.
func (b *Bot) sendMarkdown(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("failed to send markdown, retrying plain",
			slog.String("error", err.Error()),
		)
		b.sendText(chatID, text)
	}
}

// sendPoster sends a movie poster photo with a caption. No-op when the
// movie has no poster path.
func (b *Bot) sendPoster(chatID int64, m core.Movie) {
	url := tmdb.PosterURL(m.PosterPath, "w500")
	if url == "" {
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(url))
	photo.Caption = m.DisplayTitle()
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Debug("failed to send poster",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
	}
}
