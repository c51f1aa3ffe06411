package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path, origin string) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.FileDSN(path), sqlite.Config{
		Origin:       origin,
		PollInterval: 10 * time.Millisecond,
	})
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "local.db"), "")
	require.NotEmpty(t, s.Origin())

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "nope")
		require.ErrorIs(t, err, localstore.ErrNotFound)
	})

	t.Run("set overwrite delete", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "hm_session", []byte(`"a"`)))
		require.NoError(t, s.Set(ctx, "hm_session", []byte(`"b"`)))

		v, err := s.Get(ctx, "hm_session")
		require.NoError(t, err)
		require.Equal(t, `"b"`, string(v))

		require.NoError(t, s.Delete(ctx, "hm_session"))
		require.NoError(t, s.Delete(ctx, "hm_session"))
		_, err = s.Get(ctx, "hm_session")
		require.ErrorIs(t, err, localstore.ErrNotFound)
	})

	t.Run("keys by prefix treats underscore literally", func(t *testing.T) {
		for _, k := range []string{"hm_bmi_logs_u1", "hm_bmi_logs_u2", "hmXbmi_logs_u3", "hm_water_logs_u1"} {
			require.NoError(t, s.Set(ctx, k, []byte(`[]`)))
		}
		keys, err := s.Keys(ctx, localstore.PrefixBMILogs)
		require.NoError(t, err)
		require.Equal(t, []string{"hm_bmi_logs_u1", "hm_bmi_logs_u2"}, keys)
	})

	t.Run("json helpers", func(t *testing.T) {
		type goal struct{ Goal int }
		require.NoError(t, localstore.SetJSON(ctx, s, "hm_water_goal_u1", goal{2500}))

		var g goal
		require.NoError(t, localstore.GetJSON(ctx, s, "hm_water_goal_u1", &g))
		require.Equal(t, 2500, g.Goal)

		require.NoError(t, s.Set(ctx, "hm_water_goal_u2", []byte(`{not json`)))
		require.ErrorIs(t, localstore.GetJSON(ctx, s, "hm_water_goal_u2", &g), localstore.ErrNotFound)
	})

	t.Run("closed", func(t *testing.T) {
		other := openStore(t, filepath.Join(t.TempDir(), "closed.db"), "")
		require.NoError(t, other.Close())
		require.NoError(t, other.Close())
		_, err := other.Get(ctx, "k")
		require.ErrorIs(t, err, localstore.ErrClosed)
	})
}

func TestWatchSeesOtherOrigins(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "shared.db")
	a := openStore(t, path, "tab-a")
	b := openStore(t, path, "tab-b")

	require.NoError(t, a.Set(ctx, "before", []byte(`1`)))

	changes, err := a.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, a.Set(ctx, "own", []byte(`1`)))
	require.NoError(t, b.Set(ctx, localstore.KeyUsers, []byte(`[]`)))
	require.NoError(t, b.Delete(ctx, localstore.KeyUsers))

	var got []localstore.Change
	for len(got) < 2 {
		select {
		case c := <-changes:
			got = append(got, c)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, got %+v", got)
		}
	}

	require.Equal(t, localstore.KeyUsers, got[0].Key)
	require.Equal(t, "tab-b", got[0].Origin)
	require.False(t, got[0].Deleted)
	require.True(t, got[1].Deleted)

	v, err := a.Get(ctx, "before")
	require.NoError(t, err)
	require.Equal(t, "1", string(v))

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-changes
		return !open
	}, time.Second, 10*time.Millisecond)
}

func TestPruneEvents(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "prune.db"), "")

	require.NoError(t, s.Set(ctx, "a", []byte(`1`)))
	require.NoError(t, s.Set(ctx, "b", []byte(`2`)))

	n, err := s.PruneEvents(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = s.PruneEvents(ctx, time.Now().Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	v, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "1", string(v))
}
