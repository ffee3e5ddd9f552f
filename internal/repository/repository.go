// Package repository contains data access layer abstractions.
// Implementations live in subpackages (mongo, memory) inside this directory.
package repository

import (
	"context"

	"restaurantapi/internal/model"
)

// Field names of a stored restaurant record.
const (
	FieldID           = "_id"
	FieldRestaurantID = "restaurant_id"
	FieldName         = "name"
	FieldCuisine      = "cuisine"
	FieldCity         = "city"
	FieldAddress      = "address"
)

// SortDirection orders results on one field. Values match the document store's sort spec.
type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

// Condition is a single field predicate. Conditions of a Query are ANDed.
// A negated condition also matches records where the field is absent.
type Condition struct {
	Field  string
	Value  string
	Negate bool
}

// Eq matches records whose field equals value.
func Eq(field, value string) Condition {
	return Condition{Field: field, Value: value}
}

// Ne matches records whose field does not equal value.
func Ne(field, value string) Condition {
	return Condition{Field: field, Value: value, Negate: true}
}

// SortKey orders results by one field.
type SortKey struct {
	Field     string
	Direction SortDirection
}

// Query is a declarative find: filter, projection and sort.
// An empty Fields list returns whole records. ExcludeID drops the store-assigned _id.
type Query struct {
	Conditions []Condition
	Fields     []string
	ExcludeID  bool
	Sort       []SortKey
}

// RestaurantRepository defines data access for the restaurants collection.
// No business logic here, strictly persistence operations.
type RestaurantRepository interface {
	// Find returns every record matching q. No match yields an empty, non-nil slice.
	Find(ctx context.Context, q Query) ([]model.Restaurant, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// InsertMany stores the given records in one batch and returns how many were inserted.
	InsertMany(ctx context.Context, items []model.Restaurant) (int, error)

	// DeleteAll removes every stored record.
	DeleteAll(ctx context.Context) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
