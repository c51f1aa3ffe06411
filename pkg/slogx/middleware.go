package slogx

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/healthmate/pkg/idx"
)

// RequestIDHeader is echoed back on every response so client logs can be
// matched with server logs.
const RequestIDHeader = "X-Request-ID"

// HTTPMiddleware gives each request a logger tagged with its request id and
// writes one "request" line when the handler returns. Probe paths log at
// debug so the client's health polling does not flood the log.
func HTTPMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			began := time.Now()

			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = idx.New().String()
			}
			w.Header().Set(RequestIDHeader, id)

			logger := base.With("req_id", id)
			rec := &recorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(WithContext(r.Context(), logger)))

			status := rec.statusCode()
			logger.Log(r.Context(), requestLevel(r.URL.Path, status), "request",
				slog.Group("http",
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"bytes", rec.written,
				),
				"remote", r.RemoteAddr,
				"took_ms", time.Since(began).Milliseconds(),
			)
		})
	}
}

func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case path == "/livez" || path == "/readyz" || strings.HasSuffix(path, "/health"):
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// recorder captures the status and body size a handler produced.
type recorder struct {
	http.ResponseWriter

	status  int
	written int
}

func (rec *recorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.written += n
	return n, err
}

func (rec *recorder) statusCode() int {
	if rec.status == 0 {
		return http.StatusOK
	}
	return rec.status
}
