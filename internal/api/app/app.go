package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	httpapi "github.com/aussiebroadwan/healthmate/internal/api/http"
	"github.com/aussiebroadwan/healthmate/internal/api/service"
	"github.com/aussiebroadwan/healthmate/internal/api/store"
	"github.com/aussiebroadwan/healthmate/internal/api/store/drivers/sqlite"
	"github.com/aussiebroadwan/healthmate/pkg/cryptox"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

// BuildVersion is overridden with -ldflags at release time.
var BuildVersion = "v0.1.0"

// Application wires the healthmate-api store, services and HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db           store.Store
	tokens       *service.TokenService
	housekeeping *service.HousekeepingService
	server       *http.Server
}

func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "healthmate-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}
	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.openStore(); err != nil {
		return nil, err
	}
	if cfg.SeedUsers {
		if err := app.seed(); err != nil {
			_ = app.db.Close()
			return nil, err
		}
	}
	app.wire(loc)
	return app, nil
}

func (app *Application) openStore() error {
	dsn := "file:" + app.cfg.DatabaseFile +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("open %s: %w", app.cfg.DatabaseFile, err)
	}
	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate %s: %w", app.cfg.DatabaseFile, err)
	}
	app.db = db
	app.logger.Info("database ready", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) seed() error {
	ctx := slogx.WithContext(context.Background(), app.logger)
	created, err := (&service.SeedService{Store: app.db}).Run(ctx)
	if err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	app.logger.Info("seed accounts checked", "created", created)
	return nil
}

func (app *Application) wire(loc *time.Location) {
	caps := app.cfg.Caps

	app.tokens = service.NewTokenService(app.db)
	app.housekeeping = service.NewHousekeepingService(app.db, app.logger, app.cfg.HousekeepingInterval, caps)

	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)
	router.Limits = app.cfg.RateLimits
	router.TokenService = app.tokens
	router.AccountService = &service.AccountService{Store: app.db, Tokens: app.tokens, Policy: healthx.DefaultPasswordPolicy}
	router.MetricService = &service.MetricService{Store: app.db, Caps: caps}
	router.WaterService = &service.WaterService{Store: app.db, Caps: caps, Location: loc}
	router.AdminService = &service.AdminService{Store: app.db, Tokens: app.tokens}
	router.ToolService = &service.ToolService{}
	router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              ":" + strconv.Itoa(app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// Run serves until ctx is cancelled or the listener fails, then drains
// in-flight requests and closes the database. Tokens die with the process.
func (app *Application) Run(ctx context.Context) error {
	bg, stopBackground := context.WithCancel(slogx.WithContext(ctx, app.logger))
	var wg sync.WaitGroup
	wg.Go(func() { app.housekeeping.Run(bg) })

	served := make(chan error, 1)
	go func() { served <- app.server.ListenAndServe() }()
	lim := app.cfg.RateLimits
	app.logger.Info("healthmate api listening", "addr", app.server.Addr,
		slog.Group("ratelimit",
			"credential", lim.Credential.String(),
			"write", lim.Write.String(),
			"read", lim.Read.String(),
			"probe", lim.Probe.String(),
		),
	)

	var runErr error
	select {
	case err := <-served:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		app.logger.Info("shutdown requested", "cause", context.Cause(ctx))
	}

	drain, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.cfg.ShutdownGracePeriod)
	defer cancel()
	if err := app.server.Shutdown(drain); err != nil {
		app.logger.Warn("forcing connections closed", "err", err)
		_ = app.server.Close()
	}

	stopBackground()
	wg.Wait()

	if err := app.db.Close(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("close database: %w", err))
	}
	app.logger.Info("healthmate api stopped", "dropped_tokens", app.tokens.Active())
	return runErr
}
