package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleCommand(ctx context.Context, logger *zap.Logger, message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		b.sendMessage(message.Chat.ID, startText)
	case "help":
		b.sendMessage(message.Chat.ID, helpText)
	case "stats":
		if !b.isAdmin(message.From) {
			b.sendMessage(message.Chat.ID, unknownCommandText)
			return nil
		}
		return b.handleStats(ctx, message)
	default:
		b.sendMessage(message.Chat.ID, unknownCommandText)
	}
	return nil
}

func (b *Bot) handleStats(ctx context.Context, message *tgbotapi.Message) error {
	count, err := b.catalog.Count(ctx)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't count the movies.")
		return err
	}

	b.sendMessage(message.Chat.ID, fmt.Sprintf("Indexed movies: %d", count))
	return nil
}

func (b *Bot) isAdmin(user *tgbotapi.User) bool {
	return user != nil && b.opts.AdminID != 0 && user.ID == b.opts.AdminID
}
