package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xaenox/movie-bot/internal/bot"
	"github.com/xaenox/movie-bot/internal/catalog"
	"github.com/xaenox/movie-bot/internal/storage"
	"github.com/xaenox/movie-bot/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "movie-bot",
		Short: "Telegram bot that indexes a movie channel and lets users search it",
		Long: `movie-bot watches a Telegram channel for video and document posts
captioned "name | year | tags", keeps them in a catalog and answers
searches with buttons that send the original post.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the config file (optional)")
	return cmd
}

func run(ctx context.Context, configPath string) error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg.Telegram.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	store, err := openStorage(cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", zap.Error(err), zap.String("driver", cfg.Database.Driver))
		return err
	}
	defer store.Close()

	movies := catalog.New(store, logger,
		catalog.WithSearchLimit(cfg.Search.Limit),
		catalog.WithCacheSize(cfg.Search.CacheSize),
	)

	b, err := bot.New(cfg.Telegram.Token, cfg.Telegram.Debug, movies, bot.Options{
		ChannelID:    cfg.Telegram.ChannelID,
		AdminID:      cfg.Telegram.AdminID,
		EnforceAdmin: cfg.Telegram.EnforceAdmin,
		PollTimeout:  cfg.Telegram.PollTimeout,
		Workers:      cfg.Bot.Workers,
	}, logger)
	if err != nil {
		logger.Error("Failed to create bot", zap.Error(err))
		return err
	}

	if err := b.Start(ctx); err != nil {
		logger.Error("Bot error", zap.Error(err))
		return err
	}

	logger.Info("Movie bot stopped")
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func openStorage(cfg config.DatabaseConfig, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.Driver {
	case storage.DriverSQLite:
		logger.Info("Using SQLite storage", zap.String("path", cfg.Path))
		return storage.NewSQLiteStorage(cfg.Path, logger)
	case storage.DriverPostgres:
		logger.Info("Using PostgreSQL storage", zap.String("host", cfg.Host))
		if cfg.URL != "" {
			return storage.OpenPostgresStorage(cfg.URL, logger)
		}
		return storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
			DBName:   cfg.DBName,
			SSLMode:  cfg.SSLMode,
		}, logger)
	default:
		logger.Info("Using in-memory storage")
		return storage.NewMemoryStorage(), nil
	}
}
