package mocks

import (
	"context"

	"github.com/phrazzld/catalog-api/internal/events"
	"github.com/stretchr/testify/mock"
)

// MockEventEmitter is a mock of events.EventEmitter for use with testify/mock.
type MockEventEmitter struct {
	mock.Mock
}

var _ events.EventEmitter = (*MockEventEmitter)(nil)

// EmitEvent is a mock implementation of events.EventEmitter.EmitEvent
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
