package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"playembed/internal/metrics"
)

const (
	defaultMaxIdleConns    = 4
	defaultMaxOpenConns    = 4
	defaultConnMaxLifetime = time.Hour
	defaultBusyTimeoutMS   = 5000
)

// CachedFeed is a row in the cached_feeds table.
type CachedFeed struct {
	URL       string    `db:"url"`
	Body      string    `db:"body"`
	FetchedAt time.Time `db:"fetched_at"`
}

// Store is a SQLite-backed cache of fetched feed documents keyed by URL.
type Store struct {
	db *sqlx.DB
}

// Open creates (or opens) the cache database at path and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for database: %w", err)
		}
	}

	// WAL mode allows concurrent reads while writing
	dsn := fmt.Sprintf("%s?_journal=WAL&_synchronous=NORMAL&_busy_timeout=%d", path, defaultBusyTimeoutMS)

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	pragmas := []string{
		"PRAGMA temp_store = MEMORY;",
		"PRAGMA foreign_keys = ON;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			log.Warn().Err(err).Str("pragma", pragma).Msg("Failed to set PRAGMA")
		}
	}

	if err := RunMigrations(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	log.Info().Str("path", path).Msg("Feed cache database opened")
	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached document for url if it is younger than maxAge.
// A miss (absent or stale) returns nil with no error.
func (s *Store) Get(ctx context.Context, url string, maxAge time.Duration) (*CachedFeed, error) {
	var row CachedFeed
	err := s.db.GetContext(ctx, &row,
		"SELECT url, body, fetched_at FROM cached_feeds WHERE url = ?", url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.FeedCacheLookupsTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("cache lookup failed: %w", err)
	}

	if time.Since(row.FetchedAt) > maxAge {
		metrics.FeedCacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}

	metrics.FeedCacheLookupsTotal.WithLabelValues("hit").Inc()
	return &row, nil
}

// Put stores (or replaces) the cached document for url.
func (s *Store) Put(ctx context.Context, url, body string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cached_feeds (url, body, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		url, body, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cache write failed: %w", err)
	}
	return nil
}

// Purge removes cache rows older than maxAge and returns how many were deleted.
func (s *Store) Purge(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM cached_feeds WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cached feeds: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Warn().Err(err).Msg("Could not get RowsAffected after purging cached feeds")
		return 0, nil
	}
	return rowsAffected, nil
}

// Sweep periodically purges stale rows until ctx is cancelled.
func (s *Store) Sweep(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			purged, err := s.Purge(ctx, maxAge)
			if err != nil {
				log.Error().Err(err).Msg("Feed cache sweep failed")
				continue
			}
			if purged > 0 {
				log.Info().Int64("purged", purged).Msg("Purged stale cached feeds")
			}
		case <-ctx.Done():
			log.Info().Msg("Feed cache sweeper shutting down")
			return
		}
	}
}
