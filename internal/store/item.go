package store

import (
	"context"
	"time"

	"github.com/phrazzld/catalog-api/internal/domain"
)

// FreshnessToken identifies one version of the persisted collection.
// Two tokens are Equal only when the backing data has not changed between
// the observations that produced them.
type FreshnessToken struct {
	ModTime time.Time
	Size    int64
}

// Equal reports whether t and other describe the same version.
func (t FreshnessToken) Equal(other FreshnessToken) bool {
	return t.Size == other.Size && t.ModTime.Equal(other.ModTime)
}

// IsZero reports whether the token was never set.
func (t FreshnessToken) IsZero() bool {
	return t.ModTime.IsZero() && t.Size == 0
}

// ItemStore defines the interface for item persistence.
// Implementations keep no in-process copy of the collection: every Load
// reads from the backing storage.
type ItemStore interface {
	// Load reads and parses the entire persisted collection in insertion order.
	// Returns an error wrapping ErrStoreUnavailable if the data cannot be read
	// or is malformed.
	Load(ctx context.Context) ([]domain.Item, error)

	// Append adds item at the end of the collection and rewrites it.
	// Concurrent appends are not coordinated; the last writer wins.
	// Returns an error wrapping ErrStoreUnavailable on I/O failure.
	Append(ctx context.Context, item domain.Item) error

	// LastModified returns the current freshness token without reading the
	// collection content.
	// Returns an error wrapping ErrStoreUnavailable if it cannot be determined.
	LastModified(ctx context.Context) (FreshnessToken, error)
}
