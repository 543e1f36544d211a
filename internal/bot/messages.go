package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	startText = "🎬 Movie Search Bot\n\n" +
		"🔎 Send movie name or tag to search."

	helpText = `Available commands:
/start - Start the bot
/help - Show this help message

Send part of a movie name or a tag, for example "matrix" or "scifi".
Tap a result to get the movie.`

	notFoundText       = "❌ No movies found."
	resultsText        = "🎬 Search Results:"
	retrieveFailedText = "Sorry, I couldn't send this movie."
	unknownCommandText = "Unknown command. Use /help to see available commands."
)

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "⚠️ "+text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
