package migration

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Indexes backing the listing queries: cuisine equality with name ordering, and
// the restaurant_id ordering of the summary listing.
var Indexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "cuisine", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetName("cuisine_name"),
	},
	{
		Keys:    bson.D{{Key: "restaurant_id", Value: 1}},
		Options: options.Index().SetName("restaurant_id"),
	},
}

// EnsureIndexes creates the listing indexes. Creating an index that already exists
// with the same definition is a no-op on the server.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection, log *zap.Logger) error {
	start := time.Now()

	log.Info("db_index_check",
		zap.String("component", "database"),
		zap.String("collection", coll.Name()),
		zap.Int("indexes", len(Indexes)),
	)

	names, err := coll.Indexes().CreateMany(ctx, Indexes)
	if err != nil {
		log.Error("db_index_failed",
			zap.String("component", "database"),
			zap.String("collection", coll.Name()),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("create indexes: %w", err)
	}

	log.Info("db_index_done",
		zap.String("component", "database"),
		zap.String("collection", coll.Name()),
		zap.Strings("names", names),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
