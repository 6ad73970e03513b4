// Package storage defines persistence interfaces for the event log service.
//
// Implementations live in subpackages: memory for tests and demos, sqlite
// for durable journals.
package storage
