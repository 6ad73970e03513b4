// Package event defines the facts produced by conference commands.
//
// Events are the only legitimate source of state change for a conference.
// Each variant is a distinct struct implementing the sealed Event interface,
// and each has a stable wire name used by Encode and Decode. The set of
// variants is closed: Names lists all of them, and the projection tests fold
// every registered variant so a new one cannot be added without a fold.
package event
