// Package catalog indexes source channel posts and searches them.
package catalog

import (
	"context"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"

	"github.com/xaenox/movie-bot/internal/models"
	"github.com/xaenox/movie-bot/internal/storage"
)

const (
	DefaultSearchLimit = 10
	DefaultCacheSize   = 256
)

type Catalog struct {
	storage storage.Storage
	limit   int
	logger  *zap.Logger

	// cacheMu orders cache fills against purges; generation changes on
	// every purge so a search that raced an index never fills the cache.
	cacheMu    sync.Mutex
	cache      *lru.Cache[string, []*models.Movie]
	generation uint64
}

type Option func(*Catalog)

// WithSearchLimit caps the number of results a search returns.
func WithSearchLimit(limit int) Option {
	return func(c *Catalog) {
		c.limit = limit
	}
}

// WithCacheSize sets the number of cached queries. Zero disables the cache.
// The cache is only purged by Index on this Catalog, so stores written by
// other processes need it disabled.
func WithCacheSize(size int) Option {
	return func(c *Catalog) {
		if size <= 0 {
			c.cache = nil
			return
		}
		c.cache, _ = lru.New[string, []*models.Movie](size)
	}
}

func New(store storage.Storage, logger *zap.Logger, opts ...Option) *Catalog {
	c := &Catalog{
		storage: store,
		limit:   DefaultSearchLimit,
		logger:  logger,
	}
	c.cache, _ = lru.New[string, []*models.Movie](DefaultCacheSize)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Index parses caption and appends the movie it describes. Captions that do
// not parse return ErrNoCaption or ErrMalformedCaption and nothing is stored.
// The same caption indexed twice is stored twice.
func (c *Catalog) Index(ctx context.Context, caption string, messageID int, media models.ContentType) (*models.Movie, error) {
	name, year, tags, err := ParseCaption(caption)
	if err != nil {
		return nil, err
	}

	movie := &models.Movie{
		Name:      name,
		Year:      year,
		Tags:      tags,
		MessageID: messageID,
		Media:     media,
	}

	if err := c.storage.AddMovie(ctx, movie); err != nil {
		return nil, goerr.Wrap(err, "failed to store movie",
			goerr.V("message_id", messageID))
	}

	c.purgeCache()

	c.logger.Info("Indexed movie",
		zap.String("name", movie.Name),
		zap.String("year", movie.Year),
		zap.Int("message_id", movie.MessageID))

	return movie, nil
}

// Search returns movies whose name or tags contain the lowercased query,
// in the order they were indexed. The returned slice must not be modified.
func (c *Catalog) Search(ctx context.Context, query string) ([]*models.Movie, error) {
	query = strings.ToLower(query)

	generation, cached, ok := c.cached(query)
	if ok {
		return cached, nil
	}

	results, err := c.storage.SearchMovies(ctx, query, c.limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search movies",
			goerr.V("query", query))
	}

	c.fill(generation, query, results)
	return results, nil
}

// Count returns the number of indexed movies.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	count, err := c.storage.CountMovies(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count movies")
	}
	return count, nil
}

func (c *Catalog) cached(query string) (uint64, []*models.Movie, bool) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	if c.cache == nil {
		return c.generation, nil, false
	}
	results, ok := c.cache.Get(query)
	return c.generation, results, ok
}

func (c *Catalog) fill(generation uint64, query string, results []*models.Movie) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	if c.cache == nil || generation != c.generation {
		return
	}
	c.cache.Add(query, results)
}

func (c *Catalog) purgeCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.generation++
	if c.cache != nil {
		c.cache.Purge()
	}
}
