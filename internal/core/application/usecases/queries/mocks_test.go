package queries_test

import (
	"context"

	"couriertracking/internal/core/domain/model/store"
	"couriertracking/internal/core/domain/model/travel"

	"github.com/stretchr/testify/mock"
)

type MockDistanceReader struct {
	mock.Mock
}

func (m *MockDistanceReader) TotalDistance(ctx context.Context, courierID string) (float64, error) {
	args := m.Called(ctx, courierID)
	return args.Get(0).(float64), args.Error(1)
}

type MockEntranceReader struct {
	mock.Mock
}

func (m *MockEntranceReader) ListByCourier(ctx context.Context, courierID string) ([]*travel.StoreEntrance, error) {
	args := m.Called(ctx, courierID)
	return args.Get(0).([]*travel.StoreEntrance), args.Error(1)
}

type MockStoreReader struct {
	mock.Mock
}

func (m *MockStoreReader) GetAll(ctx context.Context) ([]*store.Store, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*store.Store), args.Error(1)
}
