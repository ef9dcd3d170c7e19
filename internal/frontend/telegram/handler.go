package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/cinescout/cinescout/internal/core"
	"github.com/cinescout/cinescout/internal/search"
)

const (
	unauthorizedMsg = "Sorry, you are not authorized to use this bot."
	noResultsMsg    = "No movies found."
	welcomeMsg      = "Welcome to CineScout! Send a movie title to search, " +
		"/genre <id> to browse a genre, or /genres to list genre ids."

	pageCallbackPrefix = "page:" // callback data for pagination buttons
)

// handleMessage processes an incoming text message.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.logger.Debug("received message", slog.Int64("chat_id", chatID))

	if !b.sessions.isAllowed(chatID) {
		b.sendText(chatID, unauthorizedMsg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	switch {
	case text == "/start":
		b.sendText(chatID, welcomeMsg)
		return
	case text == "/genres":
		s := b.session(ctx, chatID)
		b.sendMarkdown(chatID, FormatGenres(s.Genres()), nil)
		return
	case strings.HasPrefix(text, "/genre "):
		id, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(text, "/genre ")))
		if err != nil {
			b.sendText(chatID, "Usage: /genre <id>, e.g. /genre 28")
			return
		}
		b.runSearch(ctx, chatID, core.SearchQuery{GenreID: id, Page: 1})
		return
	case strings.HasPrefix(text, "/"):
		b.sendText(chatID, "Unknown command. Send a movie title to search.")
		return
	}

	b.runSearch(ctx, chatID, core.SearchQuery{Title: text, Page: 1})
}

// handleCallback processes pagination callback queries.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID

	b.logger.Debug("received callback",
		slog.Int64("chat_id", chatID),
		slog.String("data", cq.Data),
	)

	// Acknowledge the callback immediately.
	callback := tgbotapi.NewCallback(cq.ID, "")
	b.api.Send(callback) //nolint:errcheck // best-effort ack

	if !b.sessions.isAllowed(chatID) {
		return
	}

	if !strings.HasPrefix(cq.Data, pageCallbackPrefix) {
		return
	}
	page, err := strconv.Atoi(strings.TrimPrefix(cq.Data, pageCallbackPrefix))
	if err != nil || page < 1 {
		return
	}

	s := b.session(ctx, chatID)
	q := s.Query()
	q.Page = page
	b.runSearch(ctx, chatID, q)
}

// runSearch executes one search submission and renders the outcome.
func (b *Bot) runSearch(ctx context.Context, chatID int64, q core.SearchQuery) {
	typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	b.api.Send(typing) //nolint:errcheck // best-effort typing indicator

	s := b.session(ctx, chatID)
	seq := s.Begin(q)
	result, err := b.source.Search(ctx, q)
	if !s.Finish(seq, result, err) {
		return // a newer submission won
	}

	switch {
	case s.Failed():
		b.logger.Error("search failed",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
		b.sendText(chatID, search.ErrorMessage)
	case s.NoResults():
		b.sendText(chatID, noResultsMsg)
	default:
		results := s.Results()
		b.sendPoster(chatID, results[0])
		b.sendMarkdown(chatID,
			FormatResults(s, results, q.Page, s.TotalPages()),
			pageKeyboard(q.Page, s.TotalPages()),
		)
	}
}

// pageKeyboard builds prev/next buttons for the current page. Returns nil
// when there is only one page.
func pageKeyboard(page, totalPages int) *tgbotapi.InlineKeyboardMarkup {
	var buttons []tgbotapi.InlineKeyboardButton
	if page > 1 {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			"< Prev", fmt.Sprintf("%s%d", pageCallbackPrefix, page-1)))
	}
	if page < totalPages {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			"Next >", fmt.Sprintf("%s%d", pageCallbackPrefix, page+1)))
	}
	if len(buttons) == 0 {
		return nil
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
	return &kb
}
