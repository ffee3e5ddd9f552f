package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"restaurantapi/internal/config"
)

var mongoConnect = mongo.Connect

// ClientOptions builds driver options from c and validates them.
func ClientOptions(c config.DatabaseConfig) (*options.ClientOptions, error) {
	if c.URI == "" || c.Name == "" || c.Collection == "" {
		return nil, fmt.Errorf("invalid database config: uri, database and collection are required")
	}

	opts := options.Client().
		ApplyURI(c.URI).
		SetAppName("restaurantapi")
	if c.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(c.MaxPoolSize))
	}
	if c.ConnectTimeoutSec > 0 {
		opts.SetConnectTimeout(time.Duration(c.ConnectTimeoutSec) * time.Second)
		opts.SetServerSelectionTimeout(time.Duration(c.ConnectTimeoutSec) * time.Second)
	}

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mongo options: %w", err)
	}
	return opts, nil
}

// NewMongo connects a client and verifies the primary is reachable.
// The returned client is shared by every request; the caller disconnects it on shutdown.
func NewMongo(c config.DatabaseConfig) (*mongo.Client, error) {
	opts, err := ClientOptions(c)
	if err != nil {
		return nil, err
	}

	timeout := 10 * time.Second
	if c.ConnectTimeoutSec > 0 {
		timeout = time.Duration(c.ConnectTimeoutSec) * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongoConnect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}

// Collection returns the restaurants collection handle named by c.
func Collection(client *mongo.Client, c config.DatabaseConfig) *mongo.Collection {
	return client.Database(c.Name).Collection(c.Collection)
}
