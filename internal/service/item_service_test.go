package service

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/domain/query"
	"github.com/phrazzld/catalog-api/internal/events"
	"github.com/phrazzld/catalog-api/internal/mocks"
	"github.com/phrazzld/catalog-api/internal/platform/filestore"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1700000000123)

func fixedClock() time.Time { return fixedNow }

func TestNewItemService(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		svc, err := NewItemService(nil, discardLogger())
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, ErrNilDependency)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		svc, err := NewItemService(new(mocks.MockItemStore), nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestItemService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("filters and paginates", func(t *testing.T) {
		mockStore := new(mocks.MockItemStore)
		mockStore.On("Load", ctx).Return(sampleItems(), nil)

		svc, err := NewItemService(mockStore, discardLogger())
		require.NoError(t, err)

		result, err := svc.List(ctx, query.Params{Q: "OFFICE", Page: 1, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, []domain.Item{sampleItems()[0]}, result.Items)
		assert.Equal(t, query.Pagination{Page: 1, Limit: 1, Total: 2, TotalPages: 2}, result.Pagination)
		mockStore.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		mockStore := new(mocks.MockItemStore)
		cause := store.Unavailable("item", "load", "failed to read data file", errors.New("EIO"))
		mockStore.On("Load", ctx).Return(nil, cause)

		svc, err := NewItemService(mockStore, discardLogger())
		require.NoError(t, err)

		_, err = svc.List(ctx, query.Params{})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrStoreUnavailable)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "list_items", svcErr.Operation)
	})
}

func TestItemService_Get(t *testing.T) {
	ctx := context.Background()
	mockStore := new(mocks.MockItemStore)
	mockStore.On("Load", ctx).Return(sampleItems(), nil)

	svc, err := NewItemService(mockStore, discardLogger())
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		item, err := svc.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Chair", item.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Get(ctx, 99)
		assert.ErrorIs(t, err, store.ErrItemNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})
}

func TestItemService_Create(t *testing.T) {
	ctx := context.Background()
	expected := domain.Item{ID: 1700000000123, Name: "Lamp", Category: "Office", Price: 25.5}

	t.Run("success emits item created", func(t *testing.T) {
		mockStore := new(mocks.MockItemStore)
		mockStore.On("Append", ctx, expected).Return(nil)
		emitter := new(mocks.MockEventEmitter)
		emitter.On("EmitEvent", ctx, mock.MatchedBy(func(e *events.Event) bool {
			var payload events.StoreChanged
			return e.Type == events.EventTypeItemCreated &&
				e.UnmarshalPayload(&payload) == nil &&
				payload.ItemID == expected.ID
		})).Return(nil)

		svc, err := NewItemService(mockStore, discardLogger(), WithClock(fixedClock), WithEventEmitter(emitter))
		require.NoError(t, err)

		item, err := svc.Create(ctx, json.RawMessage(`{"name":"  Lamp ","category":"Office","price":"25.5"}`))
		require.NoError(t, err)
		assert.Equal(t, expected, item)
		mockStore.AssertExpectations(t)
		emitter.AssertExpectations(t)
	})

	t.Run("rejected payload writes nothing", func(t *testing.T) {
		mockStore := new(mocks.MockItemStore)
		emitter := new(mocks.MockEventEmitter)

		svc, err := NewItemService(mockStore, discardLogger(), WithClock(fixedClock), WithEventEmitter(emitter))
		require.NoError(t, err)

		_, err = svc.Create(ctx, json.RawMessage(`{"name":"","category":"Office","price":10}`))
		require.Error(t, err)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "name", verr.Field)
		mockStore.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		emitter.AssertNotCalled(t, "EmitEvent", mock.Anything, mock.Anything)
	})

	t.Run("append failure", func(t *testing.T) {
		mockStore := new(mocks.MockItemStore)
		cause := store.Unavailable("item", "append", "failed to write data file", errors.New("ENOSPC"))
		mockStore.On("Append", ctx, expected).Return(cause)
		emitter := new(mocks.MockEventEmitter)

		svc, err := NewItemService(mockStore, discardLogger(), WithClock(fixedClock), WithEventEmitter(emitter))
		require.NoError(t, err)

		_, err = svc.Create(ctx, json.RawMessage(`{"name":"Lamp","category":"Office","price":25.5}`))
		assert.ErrorIs(t, err, store.ErrStoreUnavailable)
		emitter.AssertNotCalled(t, "EmitEvent", mock.Anything, mock.Anything)
	})

	t.Run("emit failure does not fail the request", func(t *testing.T) {
		mockStore := new(mocks.MockItemStore)
		mockStore.On("Append", ctx, expected).Return(nil)
		emitter := new(mocks.MockEventEmitter)
		emitter.On("EmitEvent", ctx, mock.Anything).Return(errors.New("handler failed"))

		svc, err := NewItemService(mockStore, discardLogger(), WithClock(fixedClock), WithEventEmitter(emitter))
		require.NoError(t, err)

		item, err := svc.Create(ctx, json.RawMessage(`{"name":"Lamp","category":"Office","price":25.5}`))
		require.NoError(t, err)
		assert.Equal(t, expected, item)
	})
}

func TestItemService_CreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "items.json")
	_, err := filestore.EnsureFile(path)
	require.NoError(t, err)

	svc, err := NewItemService(filestore.NewItemStore(path, discardLogger()), discardLogger())
	require.NoError(t, err)

	payloads := []string{
		`{"name":"Desk","category":"Office","price":120}`,
		`{"name":"Notebook","category":"Stationery","price":"3.75"}`,
		`{"name":"Freebie","category":"Promo","price":0}`,
	}

	for _, p := range payloads {
		created, err := svc.Create(ctx, json.RawMessage(p))
		require.NoError(t, err)

		fetched, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, fetched)

		// Distinct millisecond ids for the next create.
		time.Sleep(2 * time.Millisecond)
	}

	result, err := svc.List(ctx, query.Params{Q: "office"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Desk", result.Items[0].Name)
}
