package mocks

import (
	"context"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockItemStore is a mock of store.ItemStore for use with testify/mock.
type MockItemStore struct {
	mock.Mock
}

var _ store.ItemStore = (*MockItemStore)(nil)

// Load is a mock implementation of store.ItemStore.Load
func (m *MockItemStore) Load(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]domain.Item); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

// Append is a mock implementation of store.ItemStore.Append
func (m *MockItemStore) Append(ctx context.Context, item domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// LastModified is a mock implementation of store.ItemStore.LastModified
func (m *MockItemStore) LastModified(ctx context.Context) (store.FreshnessToken, error) {
	args := m.Called(ctx)
	if token, ok := args.Get(0).(store.FreshnessToken); ok {
		return token, args.Error(1)
	}
	return store.FreshnessToken{}, args.Error(1)
}
