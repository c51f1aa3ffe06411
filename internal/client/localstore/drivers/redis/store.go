// Package redis is a localstore.Store backed by Redis. Values live under a
// key prefix and every write is announced on a pub/sub channel so other
// processes sharing the server can refresh.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultPrefix  = "hm:"
	DefaultChannel = "hm:changes"
)

type Config struct {
	Prefix  string
	Channel string
	// Origin identifies this process in change events. A random UUID is
	// used when empty.
	Origin string
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.Channel == "" {
		c.Channel = DefaultChannel
	}
	if c.Origin == "" {
		c.Origin = uuid.NewString()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

type Store struct {
	client *redis.Client
	cfg    Config
}

var _ localstore.Store = (*Store)(nil)

// NewStore connects to redisURL and verifies the connection.
func NewStore(redisURL string, cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewStoreWithClient(client, cfg), nil
}

// NewStoreWithClient wraps an existing client. Close closes the client.
func NewStoreWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg.withDefaults()}
}

func (s *Store) key(k string) string { return s.cfg.Prefix + k }

func (s *Store) Origin() string { return s.cfg.Origin }

func (s *Store) Ping(ctx context.Context) error {
	return mapClosed(s.client.Ping(ctx).Err())
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, localstore.ErrNotFound
	}
	if err != nil {
		return nil, mapClosed(err)
	}
	return v, nil
}

// Set writes the value and publishes the change in one MULTI/EXEC.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	msg, err := s.encode(key, false)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.key(key), value, 0)
		p.Publish(ctx, s.cfg.Channel, msg)
		return nil
	})
	return mapClosed(err)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, s.key(key)).Result()
	if err != nil {
		return mapClosed(err)
	}
	if n == 0 {
		return nil
	}

	msg, err := s.encode(key, true)
	if err != nil {
		return err
	}
	return mapClosed(s.client.Publish(ctx, s.cfg.Channel, msg).Err())
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, globEscape(s.key(prefix))+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.cfg.Prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, mapClosed(err)
	}

	sort.Strings(keys)
	return keys, nil
}

// Watch subscribes to the change channel. Only changes published after the
// subscription is confirmed are delivered.
func (s *Store) Watch(ctx context.Context) (<-chan localstore.Change, error) {
	ps := s.client.Subscribe(ctx, s.cfg.Channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", s.cfg.Channel, mapClosed(err))
	}

	out := make(chan localstore.Change, 64)
	go s.watch(ctx, ps, out)
	return out, nil
}

func (s *Store) watch(ctx context.Context, ps *redis.PubSub, out chan<- localstore.Change) {
	defer close(out)
	defer ps.Close()

	msgs := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-msgs:
			if !ok {
				return
			}

			var c localstore.Change
			if err := json.Unmarshal([]byte(m.Payload), &c); err != nil {
				s.cfg.Logger.Warn("dropping malformed change event", "err", err)
				continue
			}
			if c.Origin == s.cfg.Origin {
				continue
			}

			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *Store) encode(key string, deleted bool) ([]byte, error) {
	return json.Marshal(localstore.Change{
		Key:     key,
		Origin:  s.cfg.Origin,
		Deleted: deleted,
		At:      time.Now().UTC(),
	})
}

func mapClosed(err error) error {
	if errors.Is(err, redis.ErrClosed) {
		return localstore.ErrClosed
	}
	return err
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func globEscape(s string) string { return globEscaper.Replace(s) }
