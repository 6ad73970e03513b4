// Package migrations embeds the event log SQLite schema.
package migrations

import "embed"

//go:embed events/*.sql
var EventsFS embed.FS
