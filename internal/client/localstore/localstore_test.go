package localstore_test

import (
	"testing"

	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	"github.com/stretchr/testify/require"
)

func TestOwnerKeys(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		key := localstore.OwnerKey(localstore.PrefixWaterGoal, "u1")
		require.Equal(t, "hm_water_goal_u1", key)

		prefix, id, ok := localstore.SplitOwnerKey(key)
		require.True(t, ok)
		require.Equal(t, localstore.PrefixWaterGoal, prefix)
		require.Equal(t, "u1", id)
	})

	t.Run("global keys are not owner keys", func(t *testing.T) {
		for _, k := range []string{localstore.KeySession, localstore.KeyUsers, "hm_bmi_logs_"} {
			_, _, ok := localstore.SplitOwnerKey(k)
			require.False(t, ok, k)
		}
	})

	t.Run("all prefixes", func(t *testing.T) {
		require.Len(t, localstore.OwnerKeys("u1"), 6)
		require.Contains(t, localstore.OwnerKeys("u1"), "hm_hr_logs_u1")
	})
}
