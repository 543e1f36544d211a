package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/xaenox/movie-bot/internal/models"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the config as a lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStorage(config DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	return OpenPostgresStorage(config.DSN(), logger)
}

// OpenPostgresStorage connects using a DSN or postgres:// URL and applies the schema.
func OpenPostgresStorage(dsn string, logger *zap.Logger) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	storage := &PostgresStorage{db: db, logger: logger}

	if err := storage.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations/postgres.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	s.logger.Debug("Postgres schema ready")
	return nil
}

func (s *PostgresStorage) AddMovie(ctx context.Context, movie *models.Movie) error {
	query := `
		INSERT INTO movies (name, year, tags, message_id, media)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, indexed_at`

	err := s.db.QueryRowContext(ctx,
		query,
		movie.Name,
		movie.Year,
		movie.Tags,
		movie.MessageID,
		string(movie.Media),
	).Scan(&movie.ID, &movie.IndexedAt)

	if err != nil {
		return fmt.Errorf("error adding movie: %w", err)
	}

	return nil
}

func (s *PostgresStorage) SearchMovies(ctx context.Context, query string, limit int) ([]*models.Movie, error) {
	if limit <= 0 {
		return []*models.Movie{}, nil
	}

	// strpos keeps % and _ in the query literal.
	sqlQuery := `
		SELECT id, name, year, tags, message_id, media, indexed_at
		FROM movies
		WHERE strpos(name, $1) > 0 OR strpos(tags, $1) > 0
		ORDER BY id ASC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying movies: %w", err)
	}
	defer rows.Close()

	movies := make([]*models.Movie, 0, limit)
	for rows.Next() {
		movie := &models.Movie{}
		var media string
		err := rows.Scan(
			&movie.ID,
			&movie.Name,
			&movie.Year,
			&movie.Tags,
			&movie.MessageID,
			&media,
			&movie.IndexedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning movie: %w", err)
		}
		movie.Media = models.ContentType(media)
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movies: %w", err)
	}

	return movies, nil
}

func (s *PostgresStorage) CountMovies(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting movies: %w", err)
	}
	return count, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
