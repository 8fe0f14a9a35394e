// Package api handles incoming HTTP requests for the catalog: listing,
// fetching and creating items, and reporting collection statistics. It
// translates HTTP concerns to service calls and maps service errors to
// status codes and client-safe messages.
package api
