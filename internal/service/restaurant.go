package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurantapi/internal/model"
	"restaurantapi/internal/repository"
)

// ErrQueryFailure wraps every error returned by the underlying store.
var ErrQueryFailure = errors.New("restaurant query failed")

// SortOrder selects the direction of the restaurant_id ordering on List.
type SortOrder string

const (
	// SortNone keeps the store's natural order and returns whole records.
	SortNone SortOrder = ""
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder maps a sortBy value onto a SortOrder: DESC in any case is descending,
// an empty value is SortNone and anything else is ascending.
func ParseSortOrder(s string) SortOrder {
	switch {
	case s == "":
		return SortNone
	case strings.EqualFold(s, string(SortDesc)):
		return SortDesc
	default:
		return SortAsc
	}
}

// Options holds the literal values some listings filter on.
type Options struct {
	ExcludedCity string
	FixedCuisine string
}

// RestaurantService defines the read-only restaurant listings.
type RestaurantService interface {
	// List returns every restaurant. With SortNone whole records are returned unsorted;
	// otherwise restaurant_id, cuisine, name and city ordered by restaurant_id.
	List(ctx context.Context, order SortOrder) ([]model.Restaurant, error)

	// ListByCuisine returns whole records whose cuisine equals the given value.
	ListByCuisine(ctx context.Context, cuisine string) ([]model.Restaurant, error)

	// ListByCuisineExcludingCity returns cuisine, name and city of matching records
	// outside the excluded city, ordered by name.
	ListByCuisineExcludingCity(ctx context.Context, cuisine string) ([]model.Restaurant, error)

	// ListFixedCuisine is ListByCuisineExcludingCity for the configured fixed cuisine.
	ListFixedCuisine(ctx context.Context) ([]model.Restaurant, error)

	// FixedCuisine returns the configured fixed cuisine.
	FixedCuisine() string
}

// restaurantService is a concrete implementation of RestaurantService.
type restaurantService struct {
	repo repository.RestaurantRepository
	opts Options
}

// NewRestaurantService constructs a new RestaurantService.
func NewRestaurantService(repo repository.RestaurantRepository, opts Options) RestaurantService {
	return &restaurantService{repo: repo, opts: opts}
}

var summaryFields = []string{
	repository.FieldRestaurantID,
	repository.FieldCuisine,
	repository.FieldName,
	repository.FieldCity,
}

var cuisineCityFields = []string{
	repository.FieldCuisine,
	repository.FieldName,
	repository.FieldCity,
}

func (s *restaurantService) List(ctx context.Context, order SortOrder) ([]model.Restaurant, error) {
	if order == SortNone {
		return s.find(ctx, repository.Query{})
	}

	dir := repository.Ascending
	if order == SortDesc {
		dir = repository.Descending
	}
	return s.find(ctx, repository.Query{
		Fields: summaryFields,
		Sort:   []repository.SortKey{{Field: repository.FieldRestaurantID, Direction: dir}},
	})
}

func (s *restaurantService) ListByCuisine(ctx context.Context, cuisine string) ([]model.Restaurant, error) {
	return s.find(ctx, repository.Query{
		Conditions: []repository.Condition{repository.Eq(repository.FieldCuisine, cuisine)},
	})
}

func (s *restaurantService) ListByCuisineExcludingCity(ctx context.Context, cuisine string) ([]model.Restaurant, error) {
	return s.find(ctx, repository.Query{
		Conditions: []repository.Condition{
			repository.Eq(repository.FieldCuisine, cuisine),
			repository.Ne(repository.FieldCity, s.opts.ExcludedCity),
		},
		Fields:    cuisineCityFields,
		ExcludeID: true,
		Sort:      []repository.SortKey{{Field: repository.FieldName, Direction: repository.Ascending}},
	})
}

func (s *restaurantService) ListFixedCuisine(ctx context.Context) ([]model.Restaurant, error) {
	return s.ListByCuisineExcludingCity(ctx, s.opts.FixedCuisine)
}

func (s *restaurantService) FixedCuisine() string {
	return s.opts.FixedCuisine
}

// find issues exactly one repository call and normalizes its result.
func (s *restaurantService) find(ctx context.Context, q repository.Query) ([]model.Restaurant, error) {
	items, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailure, err)
	}
	if items == nil {
		items = []model.Restaurant{}
	}
	return items, nil
}
