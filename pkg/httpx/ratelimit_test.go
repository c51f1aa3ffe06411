package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/healthmate/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "remote addr", want: "192.168.1.1"},
		{name: "forwarded for wins", headers: map[string]string{"X-Forwarded-For": "203.0.113.1, 192.168.1.1", "X-Real-IP": "203.0.113.9"}, want: "203.0.113.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": " 203.0.113.2 "}, want: "203.0.113.2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tc.want, httpx.ClientIP(req))
		})
	}
}

func TestBodyField(t *testing.T) {
	t.Run("lowercases the field and restores the body", func(t *testing.T) {
		body := `{"email":"  Lan@Example.com ","password":"x"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

		require.Equal(t, "lan@example.com", httpx.BodyField("email")(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.Equal(t, body, string(rest))
	})

	t.Run("non json yields no key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("email=lan"))
		require.Empty(t, httpx.BodyField("email")(req))
	})

	t.Run("join skips empty parts", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.RemoteAddr = "192.168.1.1:12345"
		require.Equal(t, "192.168.1.1", httpx.JoinKeys(httpx.ClientIP, httpx.BodyField("email"))(req))
	})
}

func TestThrottle(t *testing.T) {
	limit := httpx.RateLimit{Requests: 3, Window: time.Minute, Burst: 3}

	send := func(h http.Handler, addr string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/bmi", nil)
		req.RemoteAddr = addr
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("rejects once the burst is spent", func(t *testing.T) {
		h := httpx.PerIP(limit)(okHandler())
		for i := range 3 {
			require.Equal(t, http.StatusOK, send(h, "10.0.0.1:1").Code, "request %d", i)
		}

		rec := send(h, "10.0.0.1:1")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.Equal(t, "20", rec.Header().Get("Retry-After"))
		require.Equal(t, "3/1m0s,3", rec.Header().Get("X-RateLimit-Policy"))
		require.Contains(t, rec.Body.String(), `"message"`)
	})

	t.Run("each address has its own bucket", func(t *testing.T) {
		h := httpx.PerIP(limit)(okHandler())
		for _, addr := range []string{"10.0.0.2:1", "10.0.0.3:1", "10.0.0.4:1", "10.0.0.5:1"} {
			require.Equal(t, http.StatusOK, send(h, addr).Code)
		}
	})

	t.Run("empty key passes through", func(t *testing.T) {
		h := httpx.Throttle(httpx.RateLimit{Requests: 1, Window: time.Hour, Burst: 1}, func(*http.Request) string { return "" })(okHandler())
		for range 3 {
			require.Equal(t, http.StatusOK, send(h, "10.0.0.6:1").Code)
		}
	})
}

func TestParseRateLimit(t *testing.T) {
	got, err := httpx.ParseRateLimit("7/30s")
	require.NoError(t, err)
	require.Equal(t, httpx.RateLimit{Requests: 7, Window: 30 * time.Second, Burst: 7}, got)

	got, err = httpx.ParseRateLimit(" 1000/1m,50 ")
	require.NoError(t, err)
	require.Equal(t, httpx.RateLimit{Requests: 1000, Window: time.Minute, Burst: 50}, got)

	for _, bad := range []string{"", "7", "x/1m", "7/soon", "7/1m,0", "0/1m"} {
		_, err := httpx.ParseRateLimit(bad)
		require.Error(t, err, bad)
	}
}

func TestLimits(t *testing.T) {
	def := httpx.DefaultLimits()
	for _, l := range []httpx.RateLimit{def.Credential, def.Write, def.Read, def.Probe} {
		require.NoError(t, l.Validate(), l.String())
	}
	require.Less(t, def.Credential.Requests, def.Write.Requests)
	require.Less(t, def.Write.Requests, def.Read.Requests)

	one := httpx.RateLimit{Requests: 1, Window: time.Second, Burst: 1}
	require.Equal(t, httpx.Limits{Credential: one, Write: one, Read: one, Probe: one}, httpx.Uniform(one))

	require.Error(t, httpx.RateLimit{}.Validate())
	require.Error(t, httpx.RateLimit{Requests: 1, Window: time.Second}.Validate())
}
