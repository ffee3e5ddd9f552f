package mocks

import (
	"context"

	"restaurantapi/internal/model"
	"restaurantapi/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) Find(ctx context.Context, q repository.Query) ([]model.Restaurant, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRestaurantRepository) InsertMany(ctx context.Context, items []model.Restaurant) (int, error) {
	args := m.Called(ctx, items)
	return args.Int(0), args.Error(1)
}

func (m *MockRestaurantRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRestaurantRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
