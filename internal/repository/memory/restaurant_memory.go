// Package memory is an in-process repository.RestaurantRepository used when no
// document store is configured. It evaluates queries with the same semantics as
// the document store: ANDed conditions, inclusive projections and stable multi-key sort.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"restaurantapi/internal/model"
	"restaurantapi/internal/repository"
)

// RestaurantMemory keeps records in insertion order. It is safe for concurrent use.
type RestaurantMemory struct {
	mu    sync.RWMutex
	items []model.Restaurant
}

// NewRestaurantMemory returns a repository holding copies of the given records.
func NewRestaurantMemory(items ...model.Restaurant) *RestaurantMemory {
	r := &RestaurantMemory{}
	_, _ = r.InsertMany(context.Background(), items)
	return r
}

var _ repository.RestaurantRepository = (*RestaurantMemory)(nil)

func (r *RestaurantMemory) Find(ctx context.Context, q repository.Query) ([]model.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]model.Restaurant, 0, len(r.items))
	for _, item := range r.items {
		if matches(item, q.Conditions) {
			out = append(out, clone(item))
		}
	}
	r.mu.RUnlock()

	if len(q.Sort) > 0 {
		slices.SortStableFunc(out, func(a, b model.Restaurant) int {
			for _, k := range q.Sort {
				if c := strings.Compare(fieldValue(a, k.Field), fieldValue(b, k.Field)); c != 0 {
					return c * int(k.Direction)
				}
			}
			return 0
		})
	}

	for i := range out {
		out[i] = project(out[i], q.Fields, q.ExcludeID)
	}
	return out, nil
}

func (r *RestaurantMemory) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

// InsertMany assigns an ObjectID hex to records without one.
func (r *RestaurantMemory) InsertMany(ctx context.Context, items []model.Restaurant) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		item = clone(item)
		if item.ID == "" {
			item.ID = primitive.NewObjectID().Hex()
		}
		r.items = append(r.items, item)
	}
	return len(items), nil
}

func (r *RestaurantMemory) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.items = nil
	r.mu.Unlock()
	return nil
}

func (r *RestaurantMemory) Ping(ctx context.Context) error {
	return ctx.Err()
}

func matches(item model.Restaurant, conds []repository.Condition) bool {
	for _, c := range conds {
		v, ok := lookup(item, c.Field)
		if c.Negate {
			if ok && v == c.Value {
				return false
			}
			continue
		}
		if !ok || v != c.Value {
			return false
		}
	}
	return true
}

// lookup returns the value of a top-level or dotted address field and whether it is set.
func lookup(item model.Restaurant, field string) (string, bool) {
	v := fieldValue(item, field)
	return v, v != ""
}

func fieldValue(item model.Restaurant, field string) string {
	switch field {
	case repository.FieldID:
		return item.ID
	case repository.FieldRestaurantID:
		return item.RestaurantID
	case repository.FieldName:
		return item.Name
	case repository.FieldCuisine:
		return item.Cuisine
	case repository.FieldCity:
		return item.City
	}
	if item.Address == nil {
		return ""
	}
	switch field {
	case repository.FieldAddress + ".building":
		return item.Address.Building
	case repository.FieldAddress + ".street":
		return item.Address.Street
	case repository.FieldAddress + ".zipcode":
		return item.Address.Zipcode
	}
	return ""
}

func project(item model.Restaurant, fields []string, excludeID bool) model.Restaurant {
	if len(fields) > 0 {
		out := model.Restaurant{ID: item.ID}
		for _, f := range fields {
			switch f {
			case repository.FieldRestaurantID:
				out.RestaurantID = item.RestaurantID
			case repository.FieldName:
				out.Name = item.Name
			case repository.FieldCuisine:
				out.Cuisine = item.Cuisine
			case repository.FieldCity:
				out.City = item.City
			case repository.FieldAddress:
				out.Address = item.Address
			}
		}
		item = out
	}
	if excludeID {
		item.ID = ""
	}
	return item
}

func clone(item model.Restaurant) model.Restaurant {
	if item.Address != nil {
		addr := *item.Address
		item.Address = &addr
	}
	return item
}
