package bot

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"
)

var ErrInvalidSelection = goerr.New("invalid movie selection")

// handleCallback copies the selected post from the source channel into the
// chat the button was pressed in. The token is not checked against the
// catalog; Telegram rejects ids that no longer exist.
func (b *Bot) handleCallback(ctx context.Context, logger *zap.Logger, query *tgbotapi.CallbackQuery) error {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Warn("Failed to answer callback", zap.Error(err))
	}

	chatID := callbackChatID(query)

	messageID, err := strconv.Atoi(query.Data)
	if err != nil {
		b.sendErrorMessage(chatID, retrieveFailedText)
		return goerr.Wrap(ErrInvalidSelection, "failed to parse selection token",
			goerr.V("data", query.Data))
	}

	copyMsg := tgbotapi.NewCopyMessage(chatID, b.opts.ChannelID, messageID)
	if _, err := b.api.CopyMessage(copyMsg); err != nil {
		b.sendErrorMessage(chatID, retrieveFailedText)
		return goerr.Wrap(err, "failed to copy movie",
			goerr.V("message_id", messageID),
			goerr.V("chat_id", chatID))
	}

	logger.Info("Sent movie",
		zap.Int("message_id", messageID),
		zap.Int64("chat_id", chatID))
	return nil
}

func callbackChatID(query *tgbotapi.CallbackQuery) int64 {
	if query.Message != nil && query.Message.Chat != nil {
		return query.Message.Chat.ID
	}
	// Buttons on inline messages carry no chat; answer the user privately.
	if query.From != nil {
		return query.From.ID
	}
	return 0
}
