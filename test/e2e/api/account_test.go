package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/stretchr/testify/require"
)

func TestAccountLifecycle(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t, nil)
	defer cleanup()

	c := healthsdk.NewClient(baseURL, 10*time.Second)

	t.Run("weak password is rejected with a message", func(t *testing.T) {
		_, res := c.Register(t.Context(), healthsdk.RegisterRequest{Name: "Weak", Email: "weak@example.com", Password: "password1"})
		requireFailed(t, res, http.StatusBadRequest)
	})

	auth, res := c.Register(t.Context(), healthsdk.RegisterRequest{
		Name: "Binh", Email: "Binh@Example.com", Password: "Sunrise42", Gender: "male", BirthDate: "1990-05-20",
	})
	requireOK(t, res)
	require.Equal(t, "binh@example.com", auth.User.Email)
	c.SetToken(auth.Token)

	t.Run("me", func(t *testing.T) {
		me, res := c.Me(t.Context())
		requireOK(t, res)
		require.Equal(t, auth.User.ID, me.User.ID)
		require.Empty(t, me.Users)
	})

	t.Run("duplicate email", func(t *testing.T) {
		other := healthsdk.NewClient(baseURL, 10*time.Second)
		_, res := other.Register(t.Context(), healthsdk.RegisterRequest{Name: "B2", Email: "binh@example.com", Password: "Sunrise42"})
		requireFailed(t, res, http.StatusBadRequest)
		require.Equal(t, "email already in use", res.Error)
	})

	t.Run("profile and password", func(t *testing.T) {
		name := "Binh Tran"
		updated, res := c.UpdateProfile(t.Context(), healthsdk.ProfileUpdateRequest{Name: &name})
		requireOK(t, res)
		require.Equal(t, "Binh Tran", updated.User.Name)

		res = c.ChangePassword(t.Context(), healthsdk.PasswordChangeRequest{CurrentPassword: "Sunrise42", NewPassword: "Moonlight77"})
		requireOK(t, res)

		loginAs(t, baseURL, "binh@example.com", "Moonlight77")
	})

	t.Run("logout invalidates the token", func(t *testing.T) {
		requireOK(t, c.Logout(t.Context()))
		_, res := c.Me(t.Context())
		requireFailed(t, res, http.StatusUnauthorized)
	})
}

func TestAdminCascade(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t, nil)
	defer cleanup()

	admin, _ := loginAs(t, baseURL, seedAdminEmail, seedAdminPassword)
	lan, lanUser := loginAs(t, baseURL, seedUserEmail, seedUserPassword)

	_, res := lan.RecordBMI(t.Context(), healthsdk.BMIRequest{Height: 160, Weight: 52})
	requireOK(t, res)
	_, res = lan.AddWater(t.Context(), healthsdk.WaterLogRequest{Amount: 300})
	requireOK(t, res)

	_, res = lan.ListUsers(t.Context())
	requireFailed(t, res, http.StatusForbidden)

	users, res := admin.ListUsers(t.Context())
	requireOK(t, res)
	require.Len(t, users.Users, 3)

	requireOK(t, admin.DeleteUser(t.Context(), lanUser.ID))

	_, res = lan.Me(t.Context())
	requireFailed(t, res, http.StatusUnauthorized)

	res = admin.DeleteUser(t.Context(), lanUser.ID)
	requireFailed(t, res, http.StatusNotFound)
}
