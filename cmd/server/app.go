package main

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ashrafz/foodshare-api/internal/config"
	"github.com/ashrafz/foodshare-api/internal/platform/mongodb"
	"github.com/ashrafz/foodshare-api/internal/service/auth"
	"github.com/ashrafz/foodshare-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	client *mongo.Client

	// Stores (using interfaces for proper abstraction)
	itemStore store.ItemStore

	// Service interfaces
	jwtService auth.JWTService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database client that must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, client *mongo.Client) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		client: client,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.itemStore = mongodb.NewMongoItemStore(client, cfg.Database.Name, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources. The database
// client is acquired once at startup and released only here.
func (app *application) cleanup() {
	if app.client != nil {
		mongodb.Disconnect(app.client, app.logger)
	}

	app.logger.Info("Application shutdown completed")
}
