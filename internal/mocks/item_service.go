package mocks

import (
	"context"
	"encoding/json"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/domain/query"
)

// MockItemService implements service.ItemService for testing
type MockItemService struct {
	// Custom behavior functions
	ListFn   func(ctx context.Context, params query.Params) (query.Result, error)
	GetFn    func(ctx context.Context, id int64) (domain.Item, error)
	CreateFn func(ctx context.Context, raw json.RawMessage) (domain.Item, error)

	// Default return values
	Result       query.Result
	Item         domain.Item
	DefaultError error
}

// List implements the ItemService.List method
func (m *MockItemService) List(ctx context.Context, params query.Params) (query.Result, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, params)
	}
	return m.Result, m.DefaultError
}

// Get implements the ItemService.Get method
func (m *MockItemService) Get(ctx context.Context, id int64) (domain.Item, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return m.Item, m.DefaultError
}

// Create implements the ItemService.Create method
func (m *MockItemService) Create(ctx context.Context, raw json.RawMessage) (domain.Item, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, raw)
	}
	return m.Item, m.DefaultError
}

// MockStatsProvider implements the stats lookup used by the stats handler
type MockStatsProvider struct {
	GetStatsFn func(ctx context.Context) (domain.Stats, error)

	Stats        domain.Stats
	DefaultError error
}

// GetStats returns GetStatsFn's result, or the default values
func (m *MockStatsProvider) GetStats(ctx context.Context) (domain.Stats, error) {
	if m.GetStatsFn != nil {
		return m.GetStatsFn(ctx)
	}
	return m.Stats, m.DefaultError
}
