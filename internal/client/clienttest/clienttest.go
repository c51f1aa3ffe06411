// Package clienttest provides fixtures for client package tests: a real
// API behind httptest that can be switched off, and throwaway local stores.
package clienttest

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	apihttp "github.com/aussiebroadwan/healthmate/internal/api/http"
	"github.com/aussiebroadwan/healthmate/internal/api/service"
	apisqlite "github.com/aussiebroadwan/healthmate/internal/api/store/drivers/sqlite"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore/drivers/sqlite"
	"github.com/aussiebroadwan/healthmate/pkg/cryptox"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/httpx"
	"github.com/stretchr/testify/require"
)

// Main points the password pepper at a temp dir, then runs the tests. Call
// it from TestMain.
func Main(m *testing.M) {
	dir, err := os.MkdirTemp("", "healthmate-client")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// relaxed keeps the API rate limits out of the way of rapid test calls.
var relaxed = httpx.Uniform(httpx.RateLimit{Requests: 10000, Window: time.Minute, Burst: 10000})

// API is a seeded healthmate-api. While Down is set every request gets a
// 503 without reaching the handlers.
type API struct {
	*httptest.Server
	down  atomic.Bool
	calls atomic.Int64
}

func NewAPI(t *testing.T) *API {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "api.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	st, err := apisqlite.NewStore(dsn)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	_, err = (&service.SeedService{Store: st}).Run(t.Context())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := service.NewTokenService(st)

	r := apihttp.NewRouter("test", st, logger)
	r.Limits = relaxed
	r.TokenService = tokens
	r.AccountService = &service.AccountService{Store: st, Tokens: tokens, Policy: healthx.DefaultPasswordPolicy}
	r.MetricService = &service.MetricService{Store: st}
	r.WaterService = &service.WaterService{Store: st, Location: time.UTC}
	r.AdminService = &service.AdminService{Store: st, Tokens: tokens}
	r.ToolService = &service.ToolService{}
	r.ApplyRoutes()

	api := &API{}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		api.calls.Add(1)
		if api.down.Load() {
			healthsdk.NewAPIError(http.StatusServiceUnavailable, "unavailable", "service unavailable").WriteError(w)
			return
		}
		r.ServeHTTP(w, req)
	}))
	t.Cleanup(api.Close)
	return api
}

// SetDown switches the API off or back on.
func (a *API) SetDown(down bool) { a.down.Store(down) }

// Calls counts every request received, including refused ones.
func (a *API) Calls() int64 { return a.calls.Load() }

// Gateway returns a fresh client for the API.
func (a *API) Gateway() *healthsdk.Client {
	return healthsdk.NewClient(a.URL, 2*time.Second)
}

// Unreachable returns a gateway whose server has already gone away.
func Unreachable(t *testing.T) *healthsdk.Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return healthsdk.NewClient(url, time.Second)
}

// Store opens a migrated local store in a temp dir.
func Store(t *testing.T) *sqlite.Store {
	t.Helper()
	return StoreAt(t, filepath.Join(t.TempDir(), "local.db"))
}

// StoreAt opens a migrated local store at path. Two stores on one path act
// as two client processes.
func StoreAt(t *testing.T, path string) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.FileDSN(path), sqlite.Config{PollInterval: 10 * time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// SignIn logs gw in against the API and returns the identity.
func SignIn(t *testing.T, gw *healthsdk.Client, email, password string) healthsdk.User {
	t.Helper()
	resp, res := gw.Login(t.Context(), healthsdk.LoginRequest{Email: email, Password: password})
	require.True(t, res.OK, res.Error)
	gw.SetToken(resp.Token)
	return resp.User
}
