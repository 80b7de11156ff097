// Package cache stores raw dictionary responses in a local SQLite database.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	word       TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
)`

// Item describes one cached response.
type Item struct {
	Word      string
	Size      int
	FetchedAt time.Time
}

// Cache is a response cache keyed by lower-cased word.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
	log zerolog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets how long a response stays fresh. Zero means forever.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Cache) {
		c.log = l
	}
}

// Open opens or creates the cache database at path.
func Open(path string, opts ...Option) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows a single writer; lookups fan out over goroutines.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	c := &Cache{
		db:  db,
		now: time.Now,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func key(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Get returns the cached body for word. Expired entries are reported as
// misses and left for Prune.
func (c *Cache) Get(ctx context.Context, word string) ([]byte, bool, error) {
	var (
		body      []byte
		fetchedAt int64
	)
	row := c.db.QueryRowContext(ctx, `SELECT body, fetched_at FROM responses WHERE word = ?`, key(word))
	err := row.Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		c.log.Debug().Str("word", word).Msg("cache miss")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache: %w", err)
	}

	if c.expired(time.Unix(fetchedAt, 0)) {
		c.log.Debug().Str("word", word).Msg("cache expired")
		return nil, false, nil
	}

	c.log.Debug().Str("word", word).Int("bytes", len(body)).Msg("cache hit")
	return body, true, nil
}

// Put stores body for word, replacing any earlier response.
func (c *Cache) Put(ctx context.Context, word string, body []byte) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO responses (word, body, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(word) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at
	`, key(word), body, c.now().Unix())
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Delete removes word from the cache.
func (c *Cache) Delete(ctx context.Context, word string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM responses WHERE word = ?`, key(word)); err != nil {
		return fmt.Errorf("deleting %q: %w", word, err)
	}
	return nil
}

// Clear removes every entry and returns how many there were.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM responses`)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	return res.RowsAffected()
}

// Prune removes expired entries and returns how many were removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.ttl).Unix()
	res, err := c.db.ExecContext(ctx, `DELETE FROM responses WHERE fetched_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}

// List returns every cached word, most recent first.
func (c *Cache) List(ctx context.Context) ([]Item, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT word, length(body), fetched_at
		FROM responses
		ORDER BY fetched_at DESC, word
	`)
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			item      Item
			fetchedAt int64
		)
		if err := rows.Scan(&item.Word, &item.Size, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}
		item.FetchedAt = time.Unix(fetchedAt, 0)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (c *Cache) expired(fetchedAt time.Time) bool {
	return c.ttl > 0 && c.now().Sub(fetchedAt) >= c.ttl
}
