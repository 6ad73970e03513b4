// Package storagetest holds behaviour tests every storage.Store must pass.
package storagetest

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/louisbranch/confplan/internal/services/eventlog/storage"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

// Run exercises a fresh store returned by open for every case.
func Run(t *testing.T, open func(t *testing.T) storage.Store) {
	t.Helper()
	t.Run("append and list in order", func(t *testing.T) { appendAndList(t, open(t)) })
	t.Run("unknown stream is empty", func(t *testing.T) { unknownStream(t, open(t)) })
	t.Run("streams in first append order", func(t *testing.T) { streamOrder(t, open(t)) })
	t.Run("organizers upsert", func(t *testing.T) { organizers(t, open(t)) })
	t.Run("cancelled context", func(t *testing.T) { cancelled(t, open(t)) })
}

func appendAndList(t *testing.T, store storage.Store) {
	ctx := context.Background()
	id := conference.NewID()
	first := []event.Event{
		event.ConferenceScheduled{Conference: conference.State{ID: id, Title: "GopherCon"}},
		event.TitleChanged{Title: "GopherCon EU"},
	}
	second := []event.Event{event.NumberOfSlotsDecided{Slots: 4}, event.VotingPeriodWasFinished{}}

	if err := store.AppendEvents(ctx, id, first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := store.AppendEvents(ctx, id, nil); err != nil {
		t.Fatalf("append nothing: %v", err)
	}
	if err := store.AppendEvents(ctx, id, second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	got, err := store.ListEvents(ctx, id)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := append(append([]event.Event{}, first...), second...)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %#v, want %#v", got, want)
	}
}

func unknownStream(t *testing.T, store storage.Store) {
	got, err := store.ListEvents(context.Background(), conference.NewID())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("events = %d, want 0", len(got))
	}
}

func streamOrder(t *testing.T, store storage.Store) {
	ctx := context.Background()
	a, b := conference.NewID(), conference.NewID()
	for _, id := range []conference.ID{b, a, b} {
		if err := store.AppendEvents(ctx, id, []event.Event{event.TitleChanged{Title: id.String()}}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	got, err := store.ListStreams(ctx)
	if err != nil {
		t.Fatalf("list streams: %v", err)
	}
	if want := []conference.ID{b, a}; !reflect.DeepEqual(got, want) {
		t.Fatalf("streams = %v, want %v", got, want)
	}
}

func organizers(t *testing.T, store storage.Store) {
	ctx := context.Background()
	ada := conference.Organizer{ID: uuid.New(), Firstname: "Ada", Lastname: "Lovelace"}
	rob := conference.Organizer{ID: uuid.New(), Firstname: "Rob", Lastname: "Pike"}
	for _, o := range []conference.Organizer{ada, rob} {
		if err := store.PutOrganizer(ctx, o); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	ada.Lastname = "King"
	if err := store.PutOrganizer(ctx, ada); err != nil {
		t.Fatalf("put again: %v", err)
	}
	got, err := store.ListOrganizers(ctx)
	if err != nil {
		t.Fatalf("list organizers: %v", err)
	}
	if want := []conference.Organizer{ada, rob}; !reflect.DeepEqual(got, want) {
		t.Fatalf("organizers = %v, want %v", got, want)
	}
}

func cancelled(t *testing.T, store storage.Store) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.AppendEvents(ctx, conference.NewID(), []event.Event{event.VotingPeriodWasReopened{}}); err == nil {
		t.Fatal("expected append with cancelled context to fail")
	}
	if _, err := store.ListStreams(ctx); err == nil {
		t.Fatal("expected list with cancelled context to fail")
	}
}
