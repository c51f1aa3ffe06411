package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
)

// Watch polls kv_events for rows written by other origins. Only changes
// made after the call are delivered.
func (s *Store) Watch(ctx context.Context) (<-chan localstore.Change, error) {
	if s.closed.Load() {
		return nil, localstore.ErrClosed
	}

	var last int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM kv_events`).Scan(&last); err != nil {
		return nil, err
	}

	out := make(chan localstore.Change, 64)
	go s.watch(ctx, last, out)
	return out, nil
}

func (s *Store) watch(ctx context.Context, last int64, out chan<- localstore.Change) {
	defer close(out)

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if s.closed.Load() {
			return
		}

		changes, next, err := s.readEvents(ctx, last)
		if err != nil {
			if ctx.Err() == nil && !s.closed.Load() {
				s.logger.Warn("change feed poll failed", "err", err)
			}
			continue
		}
		last = next

		for _, c := range changes {
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}
}

// readEvents returns foreign changes after seq and the highest seq seen,
// including this origin's own rows.
func (s *Store) readEvents(ctx context.Context, after int64) ([]localstore.Change, int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, key, origin, deleted, created_at FROM kv_events WHERE seq > ? ORDER BY seq`, after)
	if err != nil {
		return nil, after, err
	}
	defer rows.Close()

	var changes []localstore.Change
	last := after
	for rows.Next() {
		var (
			seq, at int64
			c       localstore.Change
		)
		if err := rows.Scan(&seq, &c.Key, &c.Origin, &c.Deleted, &at); err != nil {
			return nil, after, err
		}
		last = seq
		if c.Origin == s.origin {
			continue
		}
		c.At = time.Unix(0, at)
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, after, err
	}
	return changes, last, nil
}
