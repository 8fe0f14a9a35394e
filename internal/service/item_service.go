package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/domain/query"
	"github.com/phrazzld/catalog-api/internal/events"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
)

// ItemService provides item-related operations.
type ItemService interface {
	// List returns one page of the collection filtered by params.Q.
	List(ctx context.Context, params query.Params) (query.Result, error)

	// Get returns the item with the given ID, or store.ErrItemNotFound.
	Get(ctx context.Context, id int64) (domain.Item, error)

	// Create validates raw, assigns an ID and appends the item to the store.
	// Rejected payloads return a *domain.ValidationError and write nothing.
	Create(ctx context.Context, raw json.RawMessage) (domain.Item, error)
}

// ItemServiceOption configures optional collaborators of the item service.
type ItemServiceOption func(*itemServiceImpl)

// WithClock overrides the time source used to assign item IDs.
func WithClock(now func() time.Time) ItemServiceOption {
	return func(s *itemServiceImpl) {
		s.now = now
	}
}

// WithEventEmitter publishes an item-created event after every successful create.
func WithEventEmitter(emitter events.EventEmitter) ItemServiceOption {
	return func(s *itemServiceImpl) {
		s.eventEmitter = emitter
	}
}

// itemServiceImpl implements the ItemService interface
type itemServiceImpl struct {
	itemStore    store.ItemStore
	eventEmitter events.EventEmitter
	now          func() time.Time
	logger       *slog.Logger
}

// NewItemService creates a new ItemService.
// It returns an error if itemStore is nil.
func NewItemService(
	itemStore store.ItemStore,
	logger *slog.Logger,
	opts ...ItemServiceOption,
) (ItemService, error) {
	if itemStore == nil {
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   "itemStore cannot be nil",
			Err:       ErrNilDependency,
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &itemServiceImpl{
		itemStore: itemStore,
		now:       time.Now,
		logger:    logger.With("component", "item_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// List implements ItemService.
func (s *itemServiceImpl) List(ctx context.Context, params query.Params) (query.Result, error) {
	items, err := s.itemStore.Load(ctx)
	if err != nil {
		return query.Result{}, NewServiceError("list_items", "failed to load items", err)
	}

	result := query.Apply(items, params)

	logger.FromContextOrDefault(ctx, s.logger).Debug("listed items",
		"q", params.Q,
		"page", result.Pagination.Page,
		"limit", result.Pagination.Limit,
		"total", result.Pagination.Total)

	return result, nil
}

// Get implements ItemService.
func (s *itemServiceImpl) Get(ctx context.Context, id int64) (domain.Item, error) {
	items, err := s.itemStore.Load(ctx)
	if err != nil {
		return domain.Item{}, NewServiceError("get_item", "failed to load items", err)
	}

	item, ok := domain.FindItem(items, id)
	if !ok {
		return domain.Item{}, store.ErrItemNotFound
	}
	return item, nil
}

// Create implements ItemService.
func (s *itemServiceImpl) Create(ctx context.Context, raw json.RawMessage) (domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	input, err := domain.ValidateItemPayload(raw)
	if err != nil {
		log.Debug("item payload rejected", "error", err)
		return domain.Item{}, err
	}

	item := domain.NewItem(input, s.now())

	if err := s.itemStore.Append(ctx, item); err != nil {
		log.Error("failed to append item",
			"error", err,
			"item_id", item.ID)
		return domain.Item{}, NewServiceError("create_item", "failed to save item", err)
	}

	log.Info("item created",
		"item_id", item.ID,
		"category", item.Category)

	s.emitCreated(ctx, item)

	return item, nil
}

// emitCreated publishes the item-created event. The item is already
// persisted, so failures are logged and not returned.
func (s *itemServiceImpl) emitCreated(ctx context.Context, item domain.Item) {
	if s.eventEmitter == nil {
		return
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewItemCreatedEvent(item.ID)
	if err != nil {
		log.Error("failed to build item created event", "error", err, "item_id", item.ID)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit item created event",
			"error", err,
			"item_id", item.ID,
			"event_id", event.ID)
	}
}
