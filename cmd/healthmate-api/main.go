// Command healthmate-api serves accounts, metric history and hydration
// tracking to HealthMate clients.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/aussiebroadwan/healthmate/internal/api/app"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "healthmate-api:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return application.Run(ctx)
}
