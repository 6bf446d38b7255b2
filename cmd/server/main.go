// Package main implements the entry point for the FoodShare API server,
// a REST backend for a food-donation marketplace where users list surplus
// food items and other users request them.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/ashrafz/foodshare-api/internal/config"
	"github.com/ashrafz/foodshare-api/internal/platform/logger"
	"github.com/ashrafz/foodshare-api/internal/platform/mongodb"
)

// main initializes configuration, logging, and the database connection,
// injects the dependencies, and starts the HTTP server.
func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		app.logger.Error("Server exited with error", "error", err)
		app.cleanup()
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"env", cfg.Server.Env)

	client, err := mongodb.Connect(ctx, cfg.Database, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	app, err := newApplication(cfg, appLogger, client)
	if err != nil {
		mongodb.Disconnect(client, appLogger)
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	return app, nil
}
