package storage

import (
	"context"

	"github.com/xaenox/movie-bot/internal/models"
)

// Storage keeps indexed movies in insertion order.
type Storage interface {
	// AddMovie appends a movie and fills in its ID.
	AddMovie(ctx context.Context, movie *models.Movie) error
	// SearchMovies returns up to limit movies whose name or tags contain
	// query, oldest first. query is matched as a plain substring.
	SearchMovies(ctx context.Context, query string, limit int) ([]*models.Movie, error)
	CountMovies(ctx context.Context) (int, error)
	Close() error
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
