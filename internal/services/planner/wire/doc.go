// Package wire defines the messages exchanged between a planner session and
// the authoritative event log, and their JSON text-frame encoding.
//
// Every frame is a JSON object with a "kind" discriminator. Commands and
// events travel as {"type": <snake_case name>, "payload": {...}} pairs using
// the command and event codecs.
package wire
