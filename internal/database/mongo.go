package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/classpad-app/classpad-backend/internal/config"
)

// NewMongoDatabase creates and validates a MongoDB client, returning the
// application database handle.
func NewMongoDatabase(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info().
		Str("db", cfg.MongoDatabase).
		Msg("MongoDB connected")

	return client.Database(cfg.MongoDatabase), nil
}
