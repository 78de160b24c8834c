package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/atriumlabs/atrium/backend/internal/config"
	"github.com/atriumlabs/atrium/backend/internal/logger"
)

func main() {
	ctx := context.Background()

	// Initialize logger for bootstrapping
	loggerService, err := logger.NewService(&logger.Config{Level: "debug", Development: true})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Load configuration
	configService := config.NewConfigService(loggerService)
	cfg, err := configService.Load(".")
	if err != nil {
		loggerService.LogFatal(err, "Failed to load configuration")
	}

	// Rebuild the logger from the loaded configuration
	loggerService, err = logger.NewService(&cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Create a context that will be canceled on interrupt
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		loggerService.LogInfo("Received shutdown signal", nil)
		cancel()
	}()

	// Create and run application
	app, err := NewApp(ctx, cfg, loggerService)
	if err != nil {
		loggerService.LogFatal(err, "Failed to initialize application")
	}

	go func() {
		if err := app.Run(); err != nil {
			loggerService.LogError(err, "Application error")
			cancel()
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	// Perform graceful shutdown
	if err := app.Shutdown(); err != nil {
		loggerService.LogError(err, "Error during shutdown")
		os.Exit(1)
	}
}
