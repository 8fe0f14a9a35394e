package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the catalog.
const (
	// EventTypeItemCreated is emitted after an item has been appended to the store.
	EventTypeItemCreated = "item.created"
	// EventTypeStoreChanged is emitted when the data file changed outside the
	// request path, e.g. edited by hand while the server runs.
	EventTypeStoreChanged = "store.changed"
)

// Sources reported in StoreChanged payloads.
const (
	SourceAPI     = "api"
	SourceWatcher = "watcher"
)

// Event is an envelope carrying a typed, JSON-encoded payload.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the EventType constants
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// StoreChanged describes a change to the item collection.
type StoreChanged struct {
	Source string `json:"source"`
	// ItemID is set for EventTypeItemCreated.
	ItemID int64 `json:"item_id,omitempty"`
	Path   string `json:"path,omitempty"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// NewItemCreatedEvent builds the event emitted after a successful create.
func NewItemCreatedEvent(itemID int64) (*Event, error) {
	return NewEvent(EventTypeItemCreated, StoreChanged{Source: SourceAPI, ItemID: itemID})
}

// NewStoreChangedEvent builds the event emitted for an out-of-band file change.
func NewStoreChangedEvent(path string) (*Event, error) {
	return NewEvent(EventTypeStoreChanged, StoreChanged{Source: SourceWatcher, Path: path})
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts an ordinary function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
