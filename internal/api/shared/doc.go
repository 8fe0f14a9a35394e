// Package shared holds the HTTP plumbing used by both the handlers and the
// middleware: trace IDs in the request context, body reading, and the JSON
// success and error response writers.
package shared
