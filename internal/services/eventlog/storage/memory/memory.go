// Package memory provides an in-process event log store.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/louisbranch/confplan/internal/services/eventlog/storage"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

var _ storage.Store = (*Store)(nil)

// Store keeps streams and organizers in memory. It is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	streams    map[conference.ID][]event.Event
	order      []conference.ID
	organizers []conference.Organizer
}

// New returns an empty store.
func New() *Store {
	return &Store{streams: make(map[conference.ID][]event.Event)}
}

// AppendEvents implements storage.EventStore.
func (s *Store) AppendEvents(ctx context.Context, stream conference.ID, events []event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.streams[stream]
	if !ok {
		s.order = append(s.order, stream)
	}
	s.streams[stream] = append(slices.Clip(existing), events...)
	return nil
}

// ListEvents implements storage.EventStore.
func (s *Store) ListEvents(ctx context.Context, stream conference.ID) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.streams[stream]), nil
}

// ListStreams implements storage.EventStore.
func (s *Store) ListStreams(ctx context.Context) ([]conference.ID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order), nil
}

// PutOrganizer implements storage.OrganizerStore.
func (s *Store) PutOrganizer(ctx context.Context, organizer conference.Organizer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.organizers, func(o conference.Organizer) bool { return o.ID == organizer.ID })
	if i >= 0 {
		s.organizers = slices.Clone(s.organizers)
		s.organizers[i] = organizer
		return nil
	}
	s.organizers = append(slices.Clip(s.organizers), organizer)
	return nil
}

// ListOrganizers implements storage.OrganizerStore.
func (s *Store) ListOrganizers(ctx context.Context) ([]conference.Organizer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.organizers), nil
}

// Close implements storage.Store.
func (s *Store) Close() error { return nil }
