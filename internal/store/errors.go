package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// Entity-specific variants (e.g. ErrItemNotFound) wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrStoreUnavailable is returned when the persisted collection cannot be
	// read, parsed or written. Callers surface it as a server-side failure and
	// do not retry automatically.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrItemNotFound indicates that no item has the requested ID.
	ErrItemNotFound = fmt.Errorf("%w: item", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "item")
	Operation string // The operation that failed (e.g., "load", "append")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// Unavailable wraps cause as an ErrStoreUnavailable StoreError.
// Both errors.Is(err, ErrStoreUnavailable) and errors.Is(err, cause) hold.
func Unavailable(entity, operation, message string, cause error) *StoreError {
	if cause == nil {
		return NewStoreError(entity, operation, message, ErrStoreUnavailable)
	}
	return NewStoreError(entity, operation, message, fmt.Errorf("%w: %w", ErrStoreUnavailable, cause))
}
