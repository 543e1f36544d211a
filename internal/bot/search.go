package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xaenox/movie-bot/internal/models"
)

func (b *Bot) handleSearch(ctx context.Context, logger *zap.Logger, message *tgbotapi.Message) error {
	results, err := b.catalog.Search(ctx, message.Text)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Sorry, search is unavailable right now. Please try again.")
		return err
	}

	logger.Debug("Search",
		zap.String("query", message.Text),
		zap.Int("results", len(results)),
		zap.Int64("chat_id", message.Chat.ID))

	if len(results) == 0 {
		b.sendMessage(message.Chat.ID, notFoundText)
		return nil
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, resultsText)
	msg.ReplyMarkup = resultsKeyboard(results)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send search results",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID))
	}
	return nil
}

// resultsKeyboard puts one movie per row; the callback data is the
// movie's message id in the source channel.
func resultsKeyboard(movies []*models.Movie) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(m.Label(), m.Token()),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
