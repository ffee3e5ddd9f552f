package mongo

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"restaurantapi/internal/model"
	"restaurantapi/internal/repository"
)

// RestaurantMongo is a MongoDB implementation of repository.RestaurantRepository.
// Each call issues a single command against the collection and contains no business logic.
type RestaurantMongo struct {
	coll *mongo.Collection
}

// NewRestaurantMongo creates a new RestaurantMongo repository.
func NewRestaurantMongo(coll *mongo.Collection) *RestaurantMongo {
	return &RestaurantMongo{coll: coll}
}

var _ repository.RestaurantRepository = (*RestaurantMongo)(nil)

// Find runs one find command built from q and decodes every returned document.
func (r *RestaurantMongo) Find(ctx context.Context, q repository.Query) ([]model.Restaurant, error) {
	filter, opts := findArgs(q)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "finding restaurants")
	}

	out := make([]model.Restaurant, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decoding restaurants")
	}
	if out == nil {
		out = []model.Restaurant{}
	}
	return out, nil
}

// Count returns the number of documents in the collection.
func (r *RestaurantMongo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	return n, errors.Wrap(err, "counting restaurants")
}

// InsertMany inserts items unordered so one bad document does not stop the batch.
func (r *RestaurantMongo) InsertMany(ctx context.Context, items []model.Restaurant) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	docs := make([]any, 0, len(items))
	for _, item := range items {
		docs = append(docs, item)
	}

	res, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		inserted := 0
		if res != nil {
			inserted = len(res.InsertedIDs)
		}
		return inserted, errors.Wrap(err, "inserting restaurants")
	}
	return len(res.InsertedIDs), nil
}

// DeleteAll removes every document and keeps the collection and its indexes.
func (r *RestaurantMongo) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return errors.Wrap(err, "deleting restaurants")
}

// Ping checks the primary of the deployment backing the collection.
func (r *RestaurantMongo) Ping(ctx context.Context) error {
	return errors.Wrap(r.coll.Database().Client().Ping(ctx, readpref.Primary()), "pinging database")
}

// findArgs translates a repository.Query into the filter and options of a find command.
func findArgs(q repository.Query) (bson.D, *options.FindOptions) {
	filter := bson.D{}
	for _, c := range q.Conditions {
		if c.Negate {
			filter = append(filter, bson.E{Key: c.Field, Value: bson.D{{Key: "$ne", Value: c.Value}}})
			continue
		}
		filter = append(filter, bson.E{Key: c.Field, Value: c.Value})
	}

	opts := options.Find()

	if len(q.Fields) > 0 || q.ExcludeID {
		projection := bson.D{}
		for _, f := range q.Fields {
			projection = append(projection, bson.E{Key: f, Value: 1})
		}
		if q.ExcludeID {
			projection = append(projection, bson.E{Key: repository.FieldID, Value: 0})
		}
		opts.SetProjection(projection)
	}

	if len(q.Sort) > 0 {
		sort := bson.D{}
		for _, k := range q.Sort {
			sort = append(sort, bson.E{Key: k.Field, Value: int(k.Direction)})
		}
		opts.SetSort(sort)
	}

	return filter, opts
}
