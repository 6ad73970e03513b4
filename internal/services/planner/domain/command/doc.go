// Package command defines the intents organizers issue against a conference,
// and the header that addresses a command to its stream and transaction.
//
// Commands do not mutate anything. The behaviour package maps a command and
// the current conference state to the events it produces.
package command
