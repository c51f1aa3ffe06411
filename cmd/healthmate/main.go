package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/aussiebroadwan/healthmate/internal/client/app"
	"github.com/aussiebroadwan/healthmate/internal/client/cli"
)

func main() {
	cfg, err := app.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Start(); err != nil {
		_ = application.Shutdown()
		log.Fatalf("failed to start: %v", err)
	}

	// The REPL blocks on stdin, so signals close the store from here.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdown
		_ = application.Shutdown()
		os.Exit(130)
	}()

	runErr := cli.New(application, os.Stdin, os.Stdout).Run(application.Context())
	if err := application.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if runErr != nil {
		log.Fatalf("cli error: %v", runErr)
	}
}
