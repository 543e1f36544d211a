package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xaenox/movie-bot/internal/models"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteStorage keeps the catalog in a local file so it survives restarts.
type SQLiteStorage struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// NewSQLiteStorage opens (or creates) the database at path.
// An empty path or ":memory:" gives a private in-memory database.
func NewSQLiteStorage(path string, logger *zap.Logger) (*SQLiteStorage, error) {
	dsn := ":memory:"
	if path != "" && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// A single connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	s := &SQLiteStorage{db: db, path: path, logger: logger}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations/sqlite.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	s.logger.Debug("SQLite schema ready", zap.String("path", s.path))
	return nil
}

func (s *SQLiteStorage) AddMovie(ctx context.Context, movie *models.Movie) error {
	if movie.IndexedAt.IsZero() {
		movie.IndexedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO movies (name, year, tags, message_id, media, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		movie.Name,
		movie.Year,
		movie.Tags,
		movie.MessageID,
		string(movie.Media),
		movie.IndexedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("error adding movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("error getting movie id: %w", err)
	}
	movie.ID = id

	return nil
}

func (s *SQLiteStorage) SearchMovies(ctx context.Context, query string, limit int) ([]*models.Movie, error) {
	if limit <= 0 {
		return []*models.Movie{}, nil
	}

	// instr keeps % and _ in the query literal.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, year, tags, message_id, media, indexed_at
		FROM movies
		WHERE instr(name, ?) > 0 OR instr(tags, ?) > 0
		ORDER BY id ASC
		LIMIT ?`, query, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying movies: %w", err)
	}
	defer rows.Close()

	movies := make([]*models.Movie, 0, limit)
	for rows.Next() {
		movie := &models.Movie{}
		var media string
		var indexedAt int64
		if err := rows.Scan(
			&movie.ID,
			&movie.Name,
			&movie.Year,
			&movie.Tags,
			&movie.MessageID,
			&media,
			&indexedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning movie: %w", err)
		}
		movie.Media = models.ContentType(media)
		movie.IndexedAt = time.Unix(0, indexedAt)
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movies: %w", err)
	}

	return movies, nil
}

func (s *SQLiteStorage) CountMovies(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting movies: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
