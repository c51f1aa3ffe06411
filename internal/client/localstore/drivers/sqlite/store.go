// Package sqlite is a localstore.Store backed by a single SQLite file.
// Every write also appends to kv_events, which other processes poll to
// learn about changes they did not make.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// DefaultPollInterval is how often watchers read the change feed.
const DefaultPollInterval = 500 * time.Millisecond

type Config struct {
	// Origin identifies this process in the change feed. A random UUID is
	// used when empty.
	Origin       string
	PollInterval time.Duration
	Logger       *slog.Logger
}

type Store struct {
	db     *sql.DB
	origin string
	poll   time.Duration
	logger *slog.Logger
	closed atomic.Bool
}

var _ localstore.Store = (*Store)(nil)

// NewStore opens the database at dsn. Call ApplyMigrations before use.
func NewStore(dsn string, cfg Config) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.Origin == "" {
		cfg.Origin = uuid.NewString()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Store{db: db, origin: cfg.Origin, poll: cfg.PollInterval, logger: cfg.Logger}, nil
}

// FileDSN builds a DSN for a database file with the pragmas the store
// expects when several processes share it.
func FileDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func (s *Store) Origin() string { return s.origin }

func (s *Store) Ping(ctx context.Context) error {
	if s.closed.Load() {
		return localstore.ErrClosed
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, localstore.ErrClosed
	}

	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, localstore.ErrNotFound
	}
	return v, err
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.closed.Load() {
		return localstore.ErrClosed
	}

	now := time.Now().UnixNano()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kv (key, value, origin, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, origin = excluded.origin, updated_at = excluded.updated_at`,
			key, value, s.origin, now,
		)
		if err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, key, false, now)
	})
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.closed.Load() {
		return localstore.ErrClosed
	}

	now := time.Now().UnixNano()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			return err
		}
		return s.appendEvent(ctx, tx, key, true, now)
	})
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	if s.closed.Load() {
		return nil, localstore.ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM kv WHERE substr(key, 1, length(?)) = ? ORDER BY key`, prefix, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// PruneEvents removes change feed rows older than before. Watchers that
// have not caught up lose those notifications but never the data itself.
func (s *Store) PruneEvents(ctx context.Context, before time.Time) (int64, error) {
	if s.closed.Load() {
		return 0, localstore.ErrClosed
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM kv_events WHERE created_at < ?`, before.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) appendEvent(ctx context.Context, tx *sql.Tx, key string, deleted bool, at int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO kv_events (key, origin, deleted, created_at) VALUES (?, ?, ?, ?)`,
		key, s.origin, deleted, at,
	)
	return err
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Safe to call even after commit.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
