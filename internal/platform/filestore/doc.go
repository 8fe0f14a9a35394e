// Package filestore provides a file-backed implementation of the
// store.ItemStore interface. The whole item collection lives in a single
// human-readable JSON document that is rewritten on every append.
package filestore
