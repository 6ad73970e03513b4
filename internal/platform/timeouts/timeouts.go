// Package timeouts defines shared timeout constants used across the planner
// client and the event log service.
package timeouts

import "time"

// NotificationEntered is how long a confirmation notification stays in the
// entered phase before it starts leaving.
const NotificationEntered = 5 * time.Second

// NotificationLeaving is how long a leaving notification stays visible
// before it is removed.
const NotificationLeaving = 2 * time.Second

// WebsocketWrite caps a single websocket frame write.
const WebsocketWrite = 10 * time.Second

// WebsocketDial caps the websocket handshake with the event log.
const WebsocketDial = 5 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
