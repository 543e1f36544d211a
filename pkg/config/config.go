package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/viper"

	"github.com/xaenox/movie-bot/internal/storage"
)

// defaultCacheSize applies to the memory driver only. Shared stores can be
// written by other instances, which a per-process cache would not notice.
const defaultCacheSize = 256

type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Bot      BotConfig      `mapstructure:"bot"`
	Search   SearchConfig   `mapstructure:"search"`
	Database DatabaseConfig `mapstructure:"database"`
}

type TelegramConfig struct {
	Token        string `mapstructure:"token"`
	ChannelID    int64  `mapstructure:"channel_id"`
	AdminID      int64  `mapstructure:"admin_id"`
	EnforceAdmin bool   `mapstructure:"enforce_admin"`
	PollTimeout  int    `mapstructure:"poll_timeout"`
	Debug        bool   `mapstructure:"debug"`
}

type BotConfig struct {
	Workers int `mapstructure:"workers"`
}

type SearchConfig struct {
	Limit     int `mapstructure:"limit"`
	CacheSize int `mapstructure:"cache_size"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return DatabaseConfig{}, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	sslMode := u.Query().Get("sslmode")
	if sslMode == "" {
		sslMode = "disable"
	}

	return DatabaseConfig{
		Driver:   storage.DriverPostgres,
		URL:      dbURL,
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   strings.TrimPrefix(u.Path, "/"),
		SSLMode:  sslMode,
	}, nil
}

// LoadConfig reads path (if it exists) and overlays environment variables.
// BOT_TOKEN, MOVIE_CHANNEL_ID and ADMIN_ID are honoured for deployments that
// only set the environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("telegram.admin_id", 0)
	v.SetDefault("telegram.enforce_admin", false)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("bot.workers", 8)
	v.SetDefault("search.limit", 10)
	v.SetDefault("database.driver", storage.DriverMemory)
	v.SetDefault("database.path", "movies.db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")

	// Enable environment variable support
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, goerr.Wrap(err, "failed to decode config")
	}

	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse DATABASE_URL")
		}
		config.Database = dbConfig
	}

	if driver := v.GetString("DATABASE_DRIVER"); driver != "" {
		config.Database.Driver = driver
	}

	for _, key := range []string{"BOT_TOKEN", "TELEGRAM_TOKEN"} {
		if token := v.GetString(key); token != "" {
			config.Telegram.Token = token
			break
		}
	}

	if raw := v.GetString("MOVIE_CHANNEL_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, goerr.Wrap(err, "MOVIE_CHANNEL_ID is not an integer", goerr.V("value", raw))
		}
		config.Telegram.ChannelID = id
	}
	if raw := v.GetString("ADMIN_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, goerr.Wrap(err, "ADMIN_ID is not an integer", goerr.V("value", raw))
		}
		config.Telegram.AdminID = id
	}
	if raw := v.GetString("ENFORCE_ADMIN"); raw != "" {
		enforce, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, goerr.Wrap(err, "ENFORCE_ADMIN is not a boolean", goerr.V("value", raw))
		}
		config.Telegram.EnforceAdmin = enforce
	}

	switch {
	case v.IsSet("search.cache_size"):
		config.Search.CacheSize = v.GetInt("search.cache_size")
	case config.Database.Driver == storage.DriverMemory:
		config.Search.CacheSize = defaultCacheSize
	default:
		config.Search.CacheSize = 0
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return goerr.New("telegram token is required (BOT_TOKEN)")
	}
	if c.Telegram.ChannelID == 0 {
		return goerr.New("source channel id is required (MOVIE_CHANNEL_ID)")
	}
	if c.Telegram.EnforceAdmin && c.Telegram.AdminID == 0 {
		return goerr.New("enforce_admin needs an admin id (ADMIN_ID)")
	}
	if c.Telegram.PollTimeout < 0 {
		return goerr.New("poll timeout must not be negative", goerr.V("poll_timeout", c.Telegram.PollTimeout))
	}
	if c.Bot.Workers <= 0 {
		return goerr.New("bot workers must be positive", goerr.V("workers", c.Bot.Workers))
	}
	if c.Search.Limit <= 0 {
		return goerr.New("search limit must be positive", goerr.V("limit", c.Search.Limit))
	}

	switch c.Database.Driver {
	case storage.DriverMemory, storage.DriverSQLite, storage.DriverPostgres:
	default:
		return goerr.New("unknown database driver", goerr.V("driver", c.Database.Driver))
	}

	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
