// Package store defines interfaces for item persistence.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic, so services and handlers stay independent of
// how and where the item collection is kept.
package store
