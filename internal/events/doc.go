// Package events provides types and interfaces for reacting to changes in the
// item collection.
//
// Producers (the item service after a successful create, the file watcher after
// an out-of-band edit) emit events without knowing which handlers will process
// them. The primary components are:
// - Event: an envelope with a type and a JSON payload
// - StoreChanged: the payload describing what changed and who noticed
// - EventHandler / EventEmitter: the handler and publisher interfaces
package events
