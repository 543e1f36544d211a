package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/xaenox/movie-bot/internal/models"
)

type MemoryStorage struct {
	mu     sync.RWMutex
	movies []*models.Movie
	nextID int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		movies: make([]*models.Movie, 0),
		nextID: 1,
	}
}

func (s *MemoryStorage) AddMovie(ctx context.Context, movie *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if movie.IndexedAt.IsZero() {
		movie.IndexedAt = time.Now()
	}
	movie.ID = s.nextID
	s.nextID++

	stored := *movie
	s.movies = append(s.movies, &stored)
	return nil
}

func (s *MemoryStorage) SearchMovies(ctx context.Context, query string, limit int) ([]*models.Movie, error) {
	if limit <= 0 {
		return []*models.Movie{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*models.Movie, 0, limit)
	for _, m := range s.movies {
		if len(results) >= limit {
			break
		}
		if strings.Contains(m.Name, query) || strings.Contains(m.Tags, query) {
			found := *m
			results = append(results, &found)
		}
	}
	return results, nil
}

func (s *MemoryStorage) CountMovies(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.movies), nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
