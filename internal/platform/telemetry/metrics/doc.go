// Package metrics provides operational metrics collection.
//
// Metrics are registered on a caller-supplied Prometheus registerer and
// exposed in the Prometheus text format by the event log HTTP server:
//
//   - Commands: handled command count by command type and outcome
//   - Events: appended event count
//   - Connections: currently connected planner clients
//   - Latency: command handling duration
package metrics
