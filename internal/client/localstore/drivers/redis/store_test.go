package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	redisstore "github.com/aussiebroadwan/healthmate/internal/client/localstore/drivers/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, mr *miniredis.Miniredis, origin string) *redisstore.Store {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := redisstore.NewStoreWithClient(client, redisstore.Config{Origin: origin})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := newStore(t, mr, "")

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "nope")
		require.ErrorIs(t, err, localstore.ErrNotFound)
	})

	t.Run("values are prefixed", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, localstore.KeySession, []byte(`{"id":"u1"}`)))

		raw, err := mr.Get("hm:" + localstore.KeySession)
		require.NoError(t, err)
		require.Equal(t, `{"id":"u1"}`, raw)

		v, err := s.Get(ctx, localstore.KeySession)
		require.NoError(t, err)
		require.Equal(t, `{"id":"u1"}`, string(v))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, localstore.KeySession))
		require.NoError(t, s.Delete(ctx, localstore.KeySession))
		require.False(t, mr.Exists("hm:"+localstore.KeySession))
	})

	t.Run("keys", func(t *testing.T) {
		for _, k := range []string{"hm_hr_logs_b", "hm_hr_logs_a", "hm_bmi_logs_a"} {
			require.NoError(t, s.Set(ctx, k, []byte(`[]`)))
		}
		keys, err := s.Keys(ctx, localstore.PrefixHRLogs)
		require.NoError(t, err)
		require.Equal(t, []string{"hm_hr_logs_a", "hm_hr_logs_b"}, keys)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, s.Ping(ctx))
	})
}

func TestWatchSkipsOwnOrigin(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mr := miniredis.RunT(t)
	a := newStore(t, mr, "tab-a")
	b := newStore(t, mr, "tab-b")

	changes, err := a.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, a.Set(ctx, "own", []byte(`1`)))
	require.NoError(t, b.Set(ctx, localstore.KeyFeatureFlags, []byte(`{}`)))

	select {
	case c := <-changes:
		require.Equal(t, localstore.KeyFeatureFlags, c.Key)
		require.Equal(t, "tab-b", c.Origin)
		require.False(t, c.Deleted)
	case <-time.After(2 * time.Second):
		t.Fatal("no change delivered")
	}

	require.NoError(t, b.Delete(ctx, localstore.KeyFeatureFlags))
	select {
	case c := <-changes:
		require.True(t, c.Deleted)
	case <-time.After(2 * time.Second):
		t.Fatal("no delete delivered")
	}
}
