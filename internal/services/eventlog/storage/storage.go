package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

// ErrConflict indicates an append raced another writer on the same stream.
var ErrConflict = errors.New("stream was appended concurrently")

// EventStore is the append-only journal of conference streams.
type EventStore interface {
	// AppendEvents appends events to a stream in order. Appending nothing is
	// a no-op.
	AppendEvents(ctx context.Context, stream conference.ID, events []event.Event) error
	// ListEvents returns a stream's events in append order. Unknown streams
	// yield an empty list.
	ListEvents(ctx context.Context, stream conference.ID) ([]event.Event, error)
	// ListStreams returns every stream with at least one event, in order of
	// first append.
	ListStreams(ctx context.Context) ([]conference.ID, error)
}

// OrganizerStore keeps the registry of organizers.
type OrganizerStore interface {
	// PutOrganizer inserts or replaces an organizer by id.
	PutOrganizer(ctx context.Context, organizer conference.Organizer) error
	// ListOrganizers returns organizers in registration order.
	ListOrganizers(ctx context.Context) ([]conference.Organizer, error)
}

// Store is everything the event log persists.
type Store interface {
	EventStore
	OrganizerStore
	Close() error
}
