// Package task runs background jobs, such as refreshing cached statistics,
// on a small pool of workers fed by a bounded in-memory queue so they don't
// block HTTP request handling.
package task
