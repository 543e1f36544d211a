package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xaenox/movie-bot/internal/catalog"
)

// API is the part of tgbotapi.BotAPI the bot uses.
type API interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	CopyMessage(config tgbotapi.CopyMessageConfig) (tgbotapi.MessageID, error)
}

type Options struct {
	// ChannelID is the source channel whose posts are indexed and copied.
	ChannelID int64
	// AdminID may use /stats. With EnforceAdmin it is also the only
	// author whose channel posts get indexed.
	AdminID      int64
	EnforceAdmin bool
	PollTimeout  int
	Workers      int
}

type Bot struct {
	api     API
	catalog *catalog.Catalog
	opts    Options
	logger  *zap.Logger
}

func New(token string, debug bool, catalog *catalog.Catalog, opts Options, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	api.Debug = debug

	logger.Info("Authorized on Telegram", zap.String("username", api.Self.UserName))

	return NewWithAPI(api, catalog, opts, logger), nil
}

// NewWithAPI builds a bot on top of an existing API client.
func NewWithAPI(api API, catalog *catalog.Catalog, opts Options, logger *zap.Logger) *Bot {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Bot{
		api:     api,
		catalog: catalog,
		opts:    opts,
		logger:  logger,
	}
}

// Start long-polls Telegram until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.opts.PollTimeout
	u.AllowedUpdates = []string{"message", "channel_post", "callback_query"}

	updates := b.api.GetUpdatesChan(u)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
		case <-done:
		}
	}()

	b.logger.Info("Movie bot running",
		zap.Int64("channel_id", b.opts.ChannelID),
		zap.Int("workers", b.opts.Workers))

	return b.Serve(ctx, updates)
}

// Serve handles updates until the channel is closed or ctx is cancelled,
// then waits for in-flight handlers.
func (b *Bot) Serve(ctx context.Context, updates <-chan tgbotapi.Update) error {
	var g errgroup.Group
	g.SetLimit(b.opts.Workers)

	for {
		select {
		case <-ctx.Done():
			return g.Wait()
		case update, ok := <-updates:
			if !ok {
				return g.Wait()
			}
			g.Go(func() error {
				b.handleUpdate(ctx, update)
				return nil
			})
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	logger := b.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.Int("update_id", update.UpdateID))

	var err error
	switch {
	case update.ChannelPost != nil:
		err = b.handleChannelPost(ctx, logger, update.ChannelPost)
	case update.CallbackQuery != nil:
		err = b.handleCallback(ctx, logger, update.CallbackQuery)
	case update.Message != nil:
		err = b.handleMessage(ctx, logger, update.Message)
	default:
		return
	}

	if err != nil {
		logger.Error("Failed to handle update", zap.Error(err))
	}
}

func (b *Bot) handleMessage(ctx context.Context, logger *zap.Logger, message *tgbotapi.Message) error {
	if message.IsCommand() {
		return b.handleCommand(ctx, logger, message)
	}

	// Only plain text searches; captions and stickers are ignored.
	if message.Text == "" {
		return nil
	}

	return b.handleSearch(ctx, logger, message)
}
