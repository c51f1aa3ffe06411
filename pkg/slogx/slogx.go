// Package slogx builds the structured loggers used by the HealthMate API and
// client, and carries them through request and session contexts.
package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Service string
	Version string
	Env     string    // dev, test or prod; dev adds source locations
	Level   string    // debug, info, warn or error
	Format  string    // json or text
	Output  io.Writer // stdout when nil
}

// New builds a logger from cfg, tags it with the service identity and makes
// it the process default.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	logger := slog.New(newHandler(out, cfg)).With(
		slog.Group("svc",
			"name", cfg.Service,
			"version", cfg.Version,
			"env", cfg.Env,
		),
	)
	slog.SetDefault(logger)
	return logger
}

func newHandler(out io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: strings.EqualFold(cfg.Env, "dev"),
		Level:     ParseLevel(cfg.Level),
	}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}

// Nop discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel understands slog's level names (including offsets like
// "info+2") and "warning". Anything else is info.
func ParseLevel(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
