// Package service implements the catalog's application logic on top of an
// store.ItemStore: listing and creating items, and serving collection
// statistics from a freshness-checked, single-flight cache.
package service
