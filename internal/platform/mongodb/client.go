// Package mongodb implements the store interfaces against a MongoDB
// deployment. The client is created once at startup, shared by all
// requests, and disconnected during graceful shutdown.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ashrafz/foodshare-api/internal/config"
)

// connectTimeout bounds the initial connection and ping at startup.
const connectTimeout = 10 * time.Second

// Connect establishes a connection to the MongoDB deployment described by
// cfg and verifies it with a ping. The returned client is safe for
// concurrent use across requests.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	// Pin the Stable API version so driver upgrades don't change server
	// behavior underneath us.
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// Best effort: release whatever the driver allocated before failing.
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("MongoDB connection established", "database", cfg.Name)
	return client, nil
}

// Disconnect releases the client's resources with a bounded timeout.
func Disconnect(client *mongo.Client, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		logger.Error("Error closing MongoDB connection", "error", err)
	}
}
