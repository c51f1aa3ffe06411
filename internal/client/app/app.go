package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/bus"
	"github.com/aussiebroadwan/healthmate/internal/client/flags"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	redisstore "github.com/aussiebroadwan/healthmate/internal/client/localstore/drivers/redis"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore/drivers/sqlite"
	"github.com/aussiebroadwan/healthmate/internal/client/metrics"
	"github.com/aussiebroadwan/healthmate/internal/client/session"
	"github.com/aussiebroadwan/healthmate/internal/client/snapshot"
	"github.com/aussiebroadwan/healthmate/pkg/cryptox"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application is one healthmate client process: the local store, the API
// gateway and the services built over them.
type Application struct {
	cfg    Config
	logger *slog.Logger
	logOut io.Closer
	loc    *time.Location

	ctx    context.Context
	cancel context.CancelFunc

	store        localstore.Store
	housekeeping *Housekeeping

	Gateway  *healthsdk.Client
	Bus      *bus.Bus
	Session  *session.Manager
	Metrics  *metrics.Service
	Snapshot *snapshot.Builder
	Flags    *flags.Service

	resetMu sync.Mutex
	resets  []func()

	shutdownOnce sync.Once
	shutdownErr  error
}

func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{cfg: cfg}

	if err := app.initLogger(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		app.closeLog()
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	app.loc = loc

	if cfg.PepperFile != "" {
		cryptox.SetPepperPath(cfg.PepperFile)
	}

	if err := app.initStore(); err != nil {
		app.closeLog()
		return nil, err
	}

	app.ctx, app.cancel = context.WithCancel(slogx.WithContext(context.Background(), app.logger))
	app.initServices()

	return app, nil
}

// Context carries the application logger and ends at Shutdown.
func (app *Application) Context() context.Context { return app.ctx }

func (app *Application) Logger() *slog.Logger { return app.logger }

func (app *Application) Location() *time.Location { return app.loc }

// Store is the local durable store the services share.
func (app *Application) Store() localstore.Store { return app.store }

// OnReset registers fn to run after every logout.
func (app *Application) OnReset(fn func()) {
	app.resetMu.Lock()
	defer app.resetMu.Unlock()
	app.resets = append(app.resets, fn)
}

// Start restores the session, begins relaying changes made by other
// processes and starts housekeeping.
func (app *Application) Start() error {
	if err := app.Session.Hydrate(app.ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if err := app.Bus.Bridge(app.ctx, app.store); err != nil {
		return fmt.Errorf("watch local store: %w", err)
	}

	if app.housekeeping != nil {
		app.housekeeping.Start()
	}

	app.logger.Info("healthmate client started",
		"version", BuildVersion,
		"api", app.cfg.APIURL,
		"store", app.cfg.Store.Driver,
		"session", app.Session.State().String(),
	)
	return nil
}

// Shutdown stops the watchers and housekeeping and closes the store. It is
// safe to call without Start and more than once.
func (app *Application) Shutdown() error {
	app.shutdownOnce.Do(func() { app.shutdownErr = app.shutdown() })
	return app.shutdownErr
}

func (app *Application) shutdown() error {
	app.cancel()

	if app.housekeeping != nil {
		app.housekeeping.Stop()
	}

	err := app.store.Close()
	if err != nil {
		app.logger.Error("error closing local store", "error", err)
	}

	app.logger.Info("healthmate client stopped")
	app.closeLog()
	return err
}

func (app *Application) initLogger() error {
	var out io.Writer = os.Stderr
	if file := app.cfg.Log.File; file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
		app.logOut = f
	}

	app.logger = slogx.New(slogx.Config{
		Service: "healthmate",
		Version: BuildVersion,
		Env:     app.cfg.Env,
		Level:   app.cfg.Log.Level,
		Format:  app.cfg.Log.Format,
		Output:  out,
	})
	return nil
}

func (app *Application) closeLog() {
	if app.logOut != nil {
		_ = app.logOut.Close()
	}
}

func (app *Application) initStore() error {
	switch app.cfg.Store.Driver {
	case DriverRedis:
		s, err := redisstore.NewStore(app.cfg.Store.RedisURL, redisstore.Config{Logger: app.logger})
		if err != nil {
			return fmt.Errorf("failed to initialize local store: %w", err)
		}
		app.store = s

	default:
		if err := os.MkdirAll(filepath.Dir(app.cfg.Store.Path), 0o750); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
		s, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.Store.Path), sqlite.Config{
			PollInterval: app.cfg.Store.PollInterval,
			Logger:       app.logger,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize local store: %w", err)
		}
		if err := s.ApplyMigrations(); err != nil {
			_ = s.Close()
			return fmt.Errorf("failed to apply local store migrations: %w", err)
		}
		app.store = s
		app.housekeeping = NewHousekeeping(s, app.logger, app.cfg.HousekeepingInterval, app.cfg.Store.EventRetention)
	}

	app.logger.Debug("local store ready", "driver", app.cfg.Store.Driver)
	return nil
}

func (app *Application) initServices() {
	app.Gateway = healthsdk.NewClient(app.cfg.APIURL, app.cfg.RequestTimeout)
	app.Bus = bus.New()

	var seeds []session.Seed
	if app.cfg.SeedAccounts {
		seeds = session.DefaultSeeds
	}

	app.Session = session.NewManager(session.Config{
		Gateway: app.Gateway,
		Store:   app.store,
		Bus:     app.Bus,
		Seeds:   seeds,
		OnReset: app.reset,
	})
	app.Metrics = metrics.New(metrics.Config{
		Gateway:  app.Gateway,
		Store:    app.store,
		Bus:      app.Bus,
		Caps:     app.cfg.Caps,
		Location: app.loc,
	})
	app.Snapshot = &snapshot.Builder{Metrics: app.Metrics}
	app.Flags = &flags.Service{Store: app.store, Bus: app.Bus}
}

func (app *Application) reset() {
	app.resetMu.Lock()
	hooks := append([]func(){}, app.resets...)
	app.resetMu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
