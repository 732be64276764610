package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/bengalibuddy/internal/store"
)

// MockStore is a mock implementation of store.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStore) Update(ctx context.Context, key string, fn store.UpdateFunc) error {
	args := m.Called(ctx, key, fn)
	return args.Error(0)
}

var _ store.Store = (*MockStore)(nil)
