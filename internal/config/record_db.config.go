package config

import (
	"context"
	"fmt"
	"log"
	"strings"

	"record-service/shared/utils/errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoURL joins the base URI and database name as "<uri>/<db>".
func MongoURL(uri, dbName string) string {
	return strings.TrimRight(uri, "/") + "/" + dbName
}

// ConnectDB opens the single client used for the process lifetime and
// waits for the primary to answer. There is no retry.
func ConnectDB(ctx context.Context, cfg AppConfig) (*mongo.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	log.Printf("[DB] Connecting to MongoDB: db=%s", cfg.DBName)

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(MongoURL(cfg.MongoURI, cfg.DBName)).
		SetServerSelectionTimeout(cfg.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}
	return client, nil
}

// EnsureReady is the checkpoint run right before the listener starts.
func EnsureReady(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return xerrors.ErrNotReady
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", xerrors.ErrNotReady, err)
	}
	return nil
}
