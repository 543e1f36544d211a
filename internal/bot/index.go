package bot

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xaenox/movie-bot/internal/catalog"
	"github.com/xaenox/movie-bot/internal/models"
)

// handleChannelPost indexes video and document posts of the source channel.
// Posts that do not carry a "name | year | tags" caption are dropped.
func (b *Bot) handleChannelPost(ctx context.Context, logger *zap.Logger, post *tgbotapi.Message) error {
	if post.Chat == nil || post.Chat.ID != b.opts.ChannelID {
		logger.Debug("Ignoring post from another channel")
		return nil
	}

	media := mediaOf(post)
	if media == models.UnknownContent {
		return nil
	}

	if b.opts.EnforceAdmin && (post.From == nil || post.From.ID != b.opts.AdminID) {
		logger.Debug("Ignoring post not authored by admin",
			zap.Int("message_id", post.MessageID))
		return nil
	}

	_, err := b.catalog.Index(ctx, post.Caption, post.MessageID, media)
	if errors.Is(err, catalog.ErrNoCaption) || errors.Is(err, catalog.ErrMalformedCaption) {
		logger.Debug("Skipping post without a movie caption",
			zap.Int("message_id", post.MessageID),
			zap.Error(err))
		return nil
	}
	return err
}

func mediaOf(post *tgbotapi.Message) models.ContentType {
	switch {
	case post.Video != nil:
		return models.VideoContent
	case post.Document != nil:
		return models.DocumentContent
	default:
		return models.UnknownContent
	}
}
