// Package session owns the client state of one planner session.
//
// Update is a pure transition from a model and a message to a new model and
// the effects the caller must perform. Loop is the single writer that feeds
// Update one message at a time and executes its effects.
package session
