// Package app hosts the authoritative conference event log.
//
// The service decides commands against replayed streams, appends the
// resulting events, and broadcasts every confirmation batch to all
// connected planners over WebSocket. Queries are answered only to the
// connection that asked.
package app
