package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/sm8ta/station_control_console/docs"
	"github.com/sm8ta/station_control_console/internal/adapter/logger"
	"github.com/sm8ta/station_control_console/internal/app"
	"github.com/sm8ta/station_control_console/internal/config"
)

// @title Station Control Console API
// @version 1.0
// @description Employee registration forms for the station-control system

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Loading environment
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	application, err := app.New(ctx, cfg, loggerAdapter)
	if err != nil {
		log.Fatalf("Error initializing application: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("Application stopped with error: %v", err)
	}
}
