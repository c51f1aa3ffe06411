package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/service"
	"github.com/aussiebroadwan/healthmate/pkg/httpx"
	"github.com/joho/godotenv"
)

// Config is read from HEALTHMATE_* variables, plus the generic ENV, PORT and
// LOG_* ones the container platform sets.
type Config struct {
	DatabaseFile string       // HEALTHMATE_DATABASE_FILE, default healthmate.db
	PepperFile   string       // HEALTHMATE_PEPPER_FILE, created on first use
	SeedUsers    bool         // HEALTHMATE_SEED_USERS, default true
	Timezone     string       // HEALTHMATE_TIMEZONE, decides where a water "day" starts
	Caps         service.Caps // HEALTHMATE_{BMI,BMR,HEART_RATE,WATER}_CAP
	RateLimits   httpx.Limits // HEALTHMATE_RATELIMIT_{CREDENTIAL,WRITE,READ,PROBE}

	Env       string // ENV: dev, test or prod
	LogLevel  string // LOG_LEVEL
	LogFormat string // LOG_FORMAT: json or text

	Port                 int           // PORT, default 5000
	ShutdownGracePeriod  time.Duration // SHUTDOWN_GRACE_PERIOD, default 10s
	HousekeepingInterval time.Duration // HOUSEKEEPING_INTERVAL, default 1h

	loadErrs []error
}

// LoadConfig reads the environment after merging an optional .env file from
// the working directory. Variables already set win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("ignoring unreadable .env file", "err", err)
	}

	var errs []error
	def := service.DefaultCaps()
	lim := httpx.DefaultLimits()
	cfg := Config{
		DatabaseFile: envString("HEALTHMATE_DATABASE_FILE", "healthmate.db"),
		PepperFile:   envString("HEALTHMATE_PEPPER_FILE", "pepper"),
		SeedUsers:    envBool("HEALTHMATE_SEED_USERS", true),
		Timezone:     envString("HEALTHMATE_TIMEZONE", "UTC"),
		Caps: service.Caps{
			BMI:       envInt("HEALTHMATE_BMI_CAP", def.BMI),
			BMR:       envInt("HEALTHMATE_BMR_CAP", def.BMR),
			HeartRate: envInt("HEALTHMATE_HEART_RATE_CAP", def.HeartRate),
			Water:     envInt("HEALTHMATE_WATER_CAP", def.Water),
		},
		RateLimits: httpx.Limits{
			Credential: envRateLimit("HEALTHMATE_RATELIMIT_CREDENTIAL", lim.Credential, &errs),
			Write:      envRateLimit("HEALTHMATE_RATELIMIT_WRITE", lim.Write, &errs),
			Read:       envRateLimit("HEALTHMATE_RATELIMIT_READ", lim.Read, &errs),
			Probe:      envRateLimit("HEALTHMATE_RATELIMIT_PROBE", lim.Probe, &errs),
		},
		Env:                  envString("ENV", "dev"),
		LogLevel:             envString("LOG_LEVEL", "info"),
		LogFormat:            envString("LOG_FORMAT", "json"),
		Port:                 envInt("PORT", 5000),
		ShutdownGracePeriod:  envDuration("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: envDuration("HOUSEKEEPING_INTERVAL", time.Hour),
	}
	cfg.loadErrs = errs
	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	errs := slices.Clone(c.loadErrs)
	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("HEALTHMATE_DATABASE_FILE is empty"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("HEALTHMATE_TIMEZONE: %w", err))
	}
	for _, cp := range []struct {
		name string
		n    int
	}{
		{"HEALTHMATE_BMI_CAP", c.Caps.BMI},
		{"HEALTHMATE_BMR_CAP", c.Caps.BMR},
		{"HEALTHMATE_HEART_RATE_CAP", c.Caps.HeartRate},
		{"HEALTHMATE_WATER_CAP", c.Caps.Water},
	} {
		if cp.n <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", cp.name, cp.n))
		}
	}
	for _, rl := range []struct {
		name  string
		limit httpx.RateLimit
	}{
		{"HEALTHMATE_RATELIMIT_CREDENTIAL", c.RateLimits.Credential},
		{"HEALTHMATE_RATELIMIT_WRITE", c.RateLimits.Write},
		{"HEALTHMATE_RATELIMIT_READ", c.RateLimits.Read},
		{"HEALTHMATE_RATELIMIT_PROBE", c.RateLimits.Probe},
	} {
		if err := rl.limit.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", rl.name, err))
		}
	}
	return errors.Join(errs...)
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return def
}

// envRateLimit parses requests/window[,burst]. A malformed value is recorded
// in errs and the default kept.
func envRateLimit(key string, def httpx.RateLimit, errs *[]error) httpx.RateLimit {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	l, err := httpx.ParseRateLimit(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return l
}

// envDuration accepts Go durations ("90s", "1h") or bare minutes ("30").
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if minutes, err := strconv.Atoi(v); err == nil {
		return time.Duration(minutes) * time.Minute
	}
	return def
}
