package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	apihttp "github.com/aussiebroadwan/healthmate/internal/api/http"
	"github.com/aussiebroadwan/healthmate/internal/api/service"
	"github.com/aussiebroadwan/healthmate/internal/api/store/drivers/sqlite"
	"github.com/aussiebroadwan/healthmate/pkg/cryptox"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "healthmate-http")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newServerWithLimits(t, httpx.Uniform(httpx.RateLimit{Requests: 10000, Window: time.Minute, Burst: 10000}))
}

func newServerWithLimits(t *testing.T, limits httpx.Limits) *httptest.Server {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "api.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	_, err = (&service.SeedService{Store: st}).Run(t.Context())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := service.NewTokenService(st)

	r := apihttp.NewRouter("test", st, logger)
	r.Limits = limits
	r.TokenService = tokens
	r.AccountService = &service.AccountService{Store: st, Tokens: tokens, Policy: healthx.DefaultPasswordPolicy}
	r.MetricService = &service.MetricService{Store: st}
	r.WaterService = &service.WaterService{Store: st, Location: time.UTC}
	r.AdminService = &service.AdminService{Store: st, Tokens: tokens}
	r.ToolService = &service.ToolService{}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decodeAs[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func login(t *testing.T, srv *httptest.Server, email, password string) healthsdk.AuthResponse {
	t.Helper()
	code, body := call(t, srv, http.MethodPost, healthsdk.PathLogin, "", healthsdk.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, code, string(body))
	return decodeAs[healthsdk.AuthResponse](t, body)
}

func TestAuthRoutes(t *testing.T) {
	srv := newServer(t)

	t.Run("register then me", func(t *testing.T) {
		code, body := call(t, srv, http.MethodPost, healthsdk.PathRegister, "", healthsdk.RegisterRequest{
			Name: "An", Email: "an@example.com", Password: "Sunrise42", BirthDate: "1998-03-03",
		})
		require.Equal(t, http.StatusCreated, code, string(body))
		auth := decodeAs[healthsdk.AuthResponse](t, body)
		require.NotEmpty(t, auth.Token)
		require.Equal(t, healthsdk.PlanFree, auth.User.Plan)
		require.NotNil(t, auth.User.Age)

		code, body = call(t, srv, http.MethodGet, healthsdk.PathMe, auth.Token, nil)
		require.Equal(t, http.StatusOK, code)
		me := decodeAs[healthsdk.MeResponse](t, body)
		require.Equal(t, "an@example.com", me.User.Email)
		require.Empty(t, me.Users)
	})

	t.Run("error bodies carry a message", func(t *testing.T) {
		code, body := call(t, srv, http.MethodPost, healthsdk.PathRegister, "", healthsdk.RegisterRequest{
			Name: "X", Email: "lan@example.com", Password: "Sunrise42",
		})
		require.Equal(t, http.StatusBadRequest, code)
		e := decodeAs[healthsdk.APIError](t, body)
		require.Equal(t, healthsdk.ErrorCodeEmailTaken, e.Code)
		require.Equal(t, "email already in use", e.Message)

		code, body = call(t, srv, http.MethodPost, healthsdk.PathRegister, "", healthsdk.RegisterRequest{
			Name: "X", Email: "x@example.com", Password: "qwerty123",
		})
		require.Equal(t, http.StatusBadRequest, code)
		require.Equal(t, healthsdk.ErrorCodeValidation, decodeAs[healthsdk.APIError](t, body).Code)

		code, _ = call(t, srv, http.MethodPost, healthsdk.PathLogin, "", healthsdk.LoginRequest{Email: "lan@example.com", Password: "nope"})
		require.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("logout revokes", func(t *testing.T) {
		auth := login(t, srv, "lan@example.com", "Health@123")

		code, _ := call(t, srv, http.MethodPost, healthsdk.PathLogout, auth.Token, nil)
		require.Equal(t, http.StatusNoContent, code)

		code, _ = call(t, srv, http.MethodGet, healthsdk.PathMe, auth.Token, nil)
		require.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("missing token", func(t *testing.T) {
		code, body := call(t, srv, http.MethodGet, healthsdk.PathMe, "", nil)
		require.Equal(t, http.StatusUnauthorized, code)
		require.Equal(t, "missing bearer token", decodeAs[healthsdk.APIError](t, body).Message)
	})

	t.Run("password change", func(t *testing.T) {
		auth := login(t, srv, "minh@example.com", "Health@123")

		code, _ := call(t, srv, http.MethodPut, healthsdk.PathPassword, auth.Token,
			healthsdk.PasswordChangeRequest{CurrentPassword: "wrong", NewPassword: "Moonlight77"})
		require.Equal(t, http.StatusBadRequest, code)

		code, _ = call(t, srv, http.MethodPut, healthsdk.PathPassword, auth.Token,
			healthsdk.PasswordChangeRequest{CurrentPassword: "Health@123", NewPassword: "Moonlight77"})
		require.Equal(t, http.StatusNoContent, code)

		login(t, srv, "minh@example.com", "Moonlight77")
	})
}

func TestMetricRoutes(t *testing.T) {
	srv := newServer(t)
	auth := login(t, srv, "lan@example.com", "Health@123")

	t.Run("bmi", func(t *testing.T) {
		code, body := call(t, srv, http.MethodPost, healthsdk.PathBMI, auth.Token, healthsdk.BMIRequest{Height: 170, Weight: 60})
		require.Equal(t, http.StatusCreated, code, string(body))
		resp := decodeAs[healthsdk.LogResponse[healthsdk.BMIEntry]](t, body)
		require.NotNil(t, resp.Latest)
		require.Equal(t, 20.8, resp.Latest.BMI)
		require.Len(t, resp.Logs, 1)

		code, body = call(t, srv, http.MethodGet, healthsdk.PathBMI, auth.Token, nil)
		require.Equal(t, http.StatusOK, code)
		require.Len(t, decodeAs[healthsdk.LogResponse[healthsdk.BMIEntry]](t, body).Logs, 1)
	})

	t.Run("bmr", func(t *testing.T) {
		code, body := call(t, srv, http.MethodPost, healthsdk.PathBMR, auth.Token, healthsdk.BMRRequest{
			Height: 160, Weight: 55, Age: 28, Gender: "female", Activity: 1.375,
		})
		require.Equal(t, http.StatusCreated, code, string(body))
		resp := decodeAs[healthsdk.LogResponse[healthsdk.BMREntry]](t, body)
		require.Equal(t, 1249, resp.Latest.BMR)
		require.NotEmpty(t, resp.Latest.ActivityLabel)
	})

	t.Run("heart rate", func(t *testing.T) {
		code, body := call(t, srv, http.MethodPost, healthsdk.PathHeartRate, auth.Token, healthsdk.HeartRateRequest{Age: 30})
		require.Equal(t, http.StatusCreated, code, string(body))
		resp := decodeAs[healthsdk.LogResponse[healthsdk.HeartRateEntry]](t, body)
		require.Equal(t, 190, resp.Latest.Max)
		require.Equal(t, "95-133 bpm", resp.Latest.Moderate)
		require.Equal(t, "cardio", resp.Latest.Mode)
	})

	t.Run("validation", func(t *testing.T) {
		code, _ := call(t, srv, http.MethodPost, healthsdk.PathBMI, auth.Token, healthsdk.BMIRequest{Height: 10, Weight: 60})
		require.Equal(t, http.StatusBadRequest, code)
	})
}

func TestWaterRoutes(t *testing.T) {
	srv := newServer(t)
	auth := login(t, srv, "lan@example.com", "Health@123")

	code, body := call(t, srv, http.MethodGet, healthsdk.PathWaterSummary, auth.Token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 2000, decodeAs[healthsdk.WaterSummary](t, body).Goal)

	code, body = call(t, srv, http.MethodPost, healthsdk.PathWaterLogs, auth.Token, healthsdk.WaterLogRequest{Amount: 250})
	require.Equal(t, http.StatusCreated, code, string(body))
	added := decodeAs[healthsdk.WaterLogResponse](t, body)
	require.Equal(t, 250, added.Entry.Amount)
	require.Len(t, added.Logs, 1)

	code, body = call(t, srv, http.MethodPut, healthsdk.PathWaterGoal, auth.Token, healthsdk.WaterGoalRequest{Goal: 0})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 2000, decodeAs[healthsdk.WaterGoalResponse](t, body).Goal)

	code, body = call(t, srv, http.MethodGet, healthsdk.PathWaterSummary, auth.Token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 250, decodeAs[healthsdk.WaterSummary](t, body).Totals.Day)
}

func TestAdminRoutes(t *testing.T) {
	srv := newServer(t)
	admin := login(t, srv, "admin@healthmate.dev", "Admin@123")
	lan := login(t, srv, "lan@example.com", "Health@123")

	t.Run("non-admin is forbidden", func(t *testing.T) {
		code, _ := call(t, srv, http.MethodGet, healthsdk.PathAdminUsers, lan.Token, nil)
		require.Equal(t, http.StatusForbidden, code)
	})

	t.Run("me includes roster for admin", func(t *testing.T) {
		code, body := call(t, srv, http.MethodGet, healthsdk.PathMe, admin.Token, nil)
		require.Equal(t, http.StatusOK, code)
		require.Len(t, decodeAs[healthsdk.MeResponse](t, body).Users, 3)
	})

	t.Run("update plan", func(t *testing.T) {
		plan := healthsdk.PlanPro
		code, body := call(t, srv, http.MethodPut, healthsdk.AdminUserPath(lan.User.ID), admin.Token,
			healthsdk.AdminUserUpdateRequest{Plan: &plan})
		require.Equal(t, http.StatusOK, code, string(body))
		require.Equal(t, healthsdk.PlanPro, decodeAs[healthsdk.UserResponse](t, body).User.Plan)

		taken := "minh@example.com"
		code, _ = call(t, srv, http.MethodPut, healthsdk.AdminUserPath(lan.User.ID), admin.Token,
			healthsdk.AdminUserUpdateRequest{Email: &taken})
		require.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("delete", func(t *testing.T) {
		code, _ := call(t, srv, http.MethodDelete, healthsdk.AdminUserPath(lan.User.ID), admin.Token, nil)
		require.Equal(t, http.StatusNoContent, code)

		code, _ = call(t, srv, http.MethodGet, healthsdk.PathMe, lan.Token, nil)
		require.Equal(t, http.StatusUnauthorized, code)

		code, _ = call(t, srv, http.MethodDelete, healthsdk.AdminUserPath(lan.User.ID), admin.Token, nil)
		require.Equal(t, http.StatusNotFound, code)
	})
}

func TestSystemRoutes(t *testing.T) {
	srv := newServer(t)

	for _, path := range []string{"/livez", "/readyz", healthsdk.PathHealth} {
		code, body := call(t, srv, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, code, path)
		require.Equal(t, "ok", decodeAs[healthsdk.HealthResponse](t, body).Status)
	}

	code, body := call(t, srv, http.MethodGet, healthsdk.PathTools, "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, decodeAs[healthsdk.ToolsResponse](t, body).Tools, 3)
}

func TestRouterLimits(t *testing.T) {
	once := httpx.RateLimit{Requests: 1, Window: time.Hour, Burst: 1}

	t.Run("probe tier", func(t *testing.T) {
		srv := newServerWithLimits(t, httpx.Uniform(once))

		code, _ := call(t, srv, http.MethodGet, "/livez", "", nil)
		require.Equal(t, http.StatusOK, code)
		code, _ = call(t, srv, http.MethodGet, "/livez", "", nil)
		require.Equal(t, http.StatusTooManyRequests, code)
	})

	t.Run("tiers are independent", func(t *testing.T) {
		limits := httpx.Uniform(httpx.RateLimit{Requests: 10000, Window: time.Minute, Burst: 10000})
		limits.Credential = once
		srv := newServerWithLimits(t, limits)

		login := healthsdk.LoginRequest{Email: "lan@example.com", Password: "nope"}
		code, _ := call(t, srv, http.MethodPost, healthsdk.PathLogin, "", login)
		require.Equal(t, http.StatusUnauthorized, code)
		code, _ = call(t, srv, http.MethodPost, healthsdk.PathLogin, "", login)
		require.Equal(t, http.StatusTooManyRequests, code)

		for range 3 {
			code, _ = call(t, srv, http.MethodGet, "/livez", "", nil)
			require.Equal(t, http.StatusOK, code)
		}
	})
}
