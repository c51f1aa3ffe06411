package app

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/metrics"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Config struct {
	APIURL         string        `yaml:"api_url"`         // Optional: healthmate-api base URL (default: http://localhost:5000)
	RequestTimeout time.Duration `yaml:"request_timeout"` // Optional: per-request timeout (default: 5s)
	Timezone       string        `yaml:"timezone"`        // Optional: IANA zone for calendar days (default: Local)
	PepperFile     string        `yaml:"pepper_file"`     // Optional: pepper for the local roster hashes (default: ~/.healthmate/pepper)
	SeedAccounts   bool          `yaml:"seed_accounts"`   // Optional: install the demo accounts into an empty roster (default: true)
	Env            string        `yaml:"env"`             // Environment (dev, prod) (default: prod)

	Store StoreConfig  `yaml:"store"`
	Caps  metrics.Caps `yaml:"caps"`
	Log   LogConfig    `yaml:"log"`

	HousekeepingInterval time.Duration `yaml:"housekeeping_interval"` // Optional: how often old change events are pruned (default: 10m)
}

type StoreConfig struct {
	Driver   string `yaml:"driver"`    // sqlite or redis (default: sqlite)
	Path     string `yaml:"path"`      // sqlite file (default: ~/.healthmate/healthmate.db)
	RedisURL string `yaml:"redis_url"` // redis://host:port/db (default: redis://localhost:6379/0)

	PollInterval   time.Duration `yaml:"poll_interval"`   // sqlite change feed poll (default: 500ms)
	EventRetention time.Duration `yaml:"event_retention"` // sqlite change events kept (default: 1h)
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: info)
	Format string `yaml:"format"` // json, text (default: text)
	File   string `yaml:"file"`   // (default: ~/.healthmate/healthmate.log)
}

// Home is the directory holding the default config, database and logs.
func Home() string {
	if dir := os.Getenv("HEALTHMATE_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".healthmate"
	}
	return filepath.Join(home, ".healthmate")
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	home := Home()
	return Config{
		APIURL:         "http://localhost:5000",
		RequestTimeout: 5 * time.Second,
		Timezone:       "Local",
		PepperFile:     filepath.Join(home, "pepper"),
		SeedAccounts:   true,
		Env:            "prod",
		Store: StoreConfig{
			Driver:         DriverSQLite,
			Path:           filepath.Join(home, "healthmate.db"),
			RedisURL:       "redis://localhost:6379/0",
			PollInterval:   500 * time.Millisecond,
			EventRetention: time.Hour,
		},
		Caps: metrics.DefaultCaps(),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(home, "healthmate.log"),
		},
		HousekeepingInterval: 10 * time.Minute,
	}
}

// LoadConfig layers the YAML file, HEALTHMATE_* variables and then the
// command line over the defaults. A missing config file is not an error.
func LoadConfig(args []string) (Config, error) {
	fset := flag.NewFlagSet("healthmate", flag.ContinueOnError)
	path := fset.String("config", filepath.Join(Home(), "config.yaml"), "path to the YAML config file")
	apiURL := fset.String("api", "", "healthmate-api base URL")
	driver := fset.String("store", "", "local store driver (sqlite, redis)")
	dbPath := fset.String("db", "", "sqlite database file")
	redisURL := fset.String("redis", "", "redis URL for the redis driver")
	timeout := fset.Duration("timeout", 0, "API request timeout")
	level := fset.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := cfg.readFile(*path); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "api":
			cfg.APIURL = *apiURL
		case "store":
			cfg.Store.Driver = *driver
		case "db":
			cfg.Store.Path = *dbPath
		case "redis":
			cfg.Store.RedisURL = *redisURL
		case "timeout":
			cfg.RequestTimeout = *timeout
		case "log-level":
			cfg.Log.Level = *level
		}
	})

	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.APIURL = getEnvOrDefault("HEALTHMATE_API_URL", c.APIURL)
	c.RequestTimeout = getEnvDurationOrDefault("HEALTHMATE_REQUEST_TIMEOUT", c.RequestTimeout)
	c.Timezone = getEnvOrDefault("HEALTHMATE_TIMEZONE", c.Timezone)
	c.PepperFile = getEnvOrDefault("HEALTHMATE_PEPPER_FILE", c.PepperFile)
	c.SeedAccounts = getEnvBoolOrDefault("HEALTHMATE_SEED_ACCOUNTS", c.SeedAccounts)
	c.Env = getEnvOrDefault("HEALTHMATE_ENV", c.Env)
	c.Store.Driver = getEnvOrDefault("HEALTHMATE_STORE_DRIVER", c.Store.Driver)
	c.Store.Path = getEnvOrDefault("HEALTHMATE_STORE_PATH", c.Store.Path)
	c.Store.RedisURL = getEnvOrDefault("HEALTHMATE_REDIS_URL", c.Store.RedisURL)
	c.Store.PollInterval = getEnvDurationOrDefault("HEALTHMATE_POLL_INTERVAL", c.Store.PollInterval)
	c.Store.EventRetention = getEnvDurationOrDefault("HEALTHMATE_EVENT_RETENTION", c.Store.EventRetention)
	c.HousekeepingInterval = getEnvDurationOrDefault("HEALTHMATE_HOUSEKEEPING_INTERVAL", c.HousekeepingInterval)
	c.Log.Level = getEnvOrDefault("HEALTHMATE_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("HEALTHMATE_LOG_FORMAT", c.Log.Format)
	c.Log.File = getEnvOrDefault("HEALTHMATE_LOG_FILE", c.Log.File)
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			return errors.New("config: store.path is required for the sqlite driver")
		}
	case DriverRedis:
		if c.Store.RedisURL == "" {
			return errors.New("config: store.redis_url is required for the redis driver")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.APIURL == "" {
		return errors.New("config: api_url is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}
