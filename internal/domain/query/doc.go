// Package query implements filtering and pagination over an item collection.
//
// Apply is a pure function: given the full collection and the caller's
// parameters it returns the served page and its pagination metadata. Out of
// range values are coerced rather than rejected. Page numbers below 1 become 1,
// limits below 1 fall back to DefaultLimit and limits above MaxLimit are capped.
// A page past the end is clamped to the last page.
package query
