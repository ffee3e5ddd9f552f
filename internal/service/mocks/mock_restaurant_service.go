package mocks

import (
	"context"

	"restaurantapi/internal/model"
	"restaurantapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockRestaurantService struct {
	mock.Mock
}

func (m *MockRestaurantService) List(ctx context.Context, order service.SortOrder) ([]model.Restaurant, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) ListByCuisine(ctx context.Context, cuisine string) ([]model.Restaurant, error) {
	args := m.Called(ctx, cuisine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) ListByCuisineExcludingCity(ctx context.Context, cuisine string) ([]model.Restaurant, error) {
	args := m.Called(ctx, cuisine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) ListFixedCuisine(ctx context.Context) ([]model.Restaurant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) FixedCuisine() string {
	args := m.Called()
	return args.String(0)
}
