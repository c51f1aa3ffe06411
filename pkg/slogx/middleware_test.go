package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/healthmate/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "healthmate-api", Level: "debug", Format: "json", Output: &buf})

	var inner *slog.Logger
	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = slogx.FromContext(r.Context())
		if r.URL.Path == "/api/bmi" {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	t.Run("echoes the caller's request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodPost, "/api/bmi", nil)
		req.Header.Set(slogx.RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		require.NotNil(t, inner)
		require.Equal(t, "req-123", rec.Header().Get(slogx.RequestIDHeader))

		line := decodeLine(t, &buf)
		require.Equal(t, "request", line["msg"])
		require.Equal(t, "WARN", line["level"])
		require.Equal(t, "req-123", line["req_id"])

		httpAttrs := line["http"].(map[string]any)
		require.EqualValues(t, http.StatusUnprocessableEntity, httpAttrs["status"])
		require.EqualValues(t, len(`{"ok":true}`), httpAttrs["bytes"])
		require.Equal(t, "healthmate-api", line["svc"].(map[string]any)["name"])
	})

	t.Run("generates a request id and logs probes at debug", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		require.Len(t, rec.Header().Get(slogx.RequestIDHeader), 26)
		line := decodeLine(t, &buf)
		require.Equal(t, "DEBUG", line["level"])
		require.EqualValues(t, http.StatusOK, line["http"].(map[string]any)["status"])
	})
}

func TestContextLogger(t *testing.T) {
	require.Same(t, slog.Default(), slogx.FromContext(context.Background()))

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := slogx.WithAttrs(slogx.WithContext(context.Background(), base), "user_id", "u1")

	slogx.Component(ctx, "gateway").Info("call")
	line := decodeLine(t, &buf)
	require.Equal(t, "u1", line["user_id"])
	require.Equal(t, "gateway", line["component"])
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info+2":  slog.LevelInfo + 2,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		require.Equal(t, want, slogx.ParseLevel(in), in)
	}
}
