package clienttest_test

import (
	"testing"

	"github.com/aussiebroadwan/healthmate/internal/client/clienttest"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) { clienttest.Main(m) }

func TestAPI(t *testing.T) {
	t.Run("rapid sign-ins are not throttled", func(t *testing.T) {
		api := clienttest.NewAPI(t)
		for range 20 {
			clienttest.SignIn(t, api.Gateway(), "lan@example.com", "Health@123")
		}
	})

	t.Run("down refuses every call", func(t *testing.T) {
		api := clienttest.NewAPI(t)
		api.SetDown(true)

		_, res := api.Gateway().Login(t.Context(), healthsdk.LoginRequest{Email: "lan@example.com", Password: "Health@123"})
		require.False(t, res.OK)
		require.Equal(t, int64(1), api.Calls())

		api.SetDown(false)
		clienttest.SignIn(t, api.Gateway(), "lan@example.com", "Health@123")
		require.Equal(t, int64(2), api.Calls())
	})
}
