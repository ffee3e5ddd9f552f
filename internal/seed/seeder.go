// Package seed bulk-loads restaurant records into the store before the API starts serving.
package seed

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"restaurantapi/internal/model"
)

// Store is the subset of the repository the seeder writes through.
type Store interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, items []model.Restaurant) (int, error)
	DeleteAll(ctx context.Context) error
}

// Seeder loads one Source into a Store.
type Seeder struct {
	store        Store
	source       Source
	dropExisting bool
	log          *zap.Logger
}

// NewSeeder returns a Seeder. With dropExisting the store is emptied first;
// otherwise a non-empty store is left untouched.
func NewSeeder(store Store, source Source, dropExisting bool, log *zap.Logger) *Seeder {
	return &Seeder{store: store, source: source, dropExisting: dropExisting, log: log}
}

// Seed returns the number of records inserted.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	if s.dropExisting {
		if err := s.store.DeleteAll(ctx); err != nil {
			return 0, errors.Wrap(err, "clearing collection before seeding")
		}
	} else {
		n, err := s.store.Count(ctx)
		if err != nil {
			return 0, errors.Wrap(err, "checking collection before seeding")
		}
		if n > 0 {
			s.log.Info("seed skipped, collection not empty",
				zap.Int64("existing", n),
				zap.Stringer("source", s.source),
			)
			return 0, nil
		}
	}

	rc, err := s.source.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	items, err := Decode(rc)
	if err != nil {
		return 0, errors.Wrapf(err, "decoding %s", s.source)
	}

	inserted, err := s.store.InsertMany(ctx, items)
	if err != nil {
		return inserted, errors.Wrap(err, "inserting seed records")
	}

	s.log.Info("seed loaded",
		zap.Int("inserted", inserted),
		zap.Stringer("source", s.source),
		zap.Bool("dropped_existing", s.dropExisting),
	)
	return inserted, nil
}
