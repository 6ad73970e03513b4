package notification

import (
	"testing"
	"time"

	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

func TestEnterBuildsEnteredEntriesPerEvent(t *testing.T) {
	entries := Enter("tx-1", []event.Event{
		event.TitleChanged{Title: "a"},
		event.TitleChanged{Title: "a"},
	})
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	for i, entry := range entries {
		if entry.Phase != PhaseEntered {
			t.Fatalf("entry %d phase = %s, want entered", i, entry.Phase)
		}
		if entry.Key != (Key{TransactionID: "tx-1", Index: i}) {
			t.Fatalf("entry %d key = %v", i, entry.Key)
		}
	}
}

func TestPhaseProgression(t *testing.T) {
	entries := Enter("tx-1", []event.Event{event.NumberOfSlotsDecided{Slots: 5}})
	key := entries[0].Key
	list := List{}.Add(entries...)

	got, ok := list.Get(key)
	if !ok || got.Phase != PhaseEntered {
		t.Fatalf("phase = %v, want entered", got.Phase)
	}

	list, ok = list.Leave(key)
	if !ok {
		t.Fatal("expected first timeout to move entry to leaving")
	}
	if got, _ := list.Get(key); got.Phase != PhaseLeaving {
		t.Fatalf("phase = %s, want leaving", got.Phase)
	}

	list, ok = list.Remove(key)
	if !ok {
		t.Fatal("expected second timeout to remove entry")
	}
	if _, ok := list.Get(key); ok {
		t.Fatal("expected entry to be absent")
	}

	again, ok := list.Remove(key)
	if ok {
		t.Fatal("expected duplicate removal to be a no-op")
	}
	if again.Len() != 0 {
		t.Fatalf("len = %d, want 0", again.Len())
	}
}

func TestLeaveOnlyOnce(t *testing.T) {
	list := List{}.Add(Enter("tx-1", []event.Event{event.VotingPeriodWasFinished{}})...)
	key := Key{TransactionID: "tx-1"}
	list, _ = list.Leave(key)
	if _, ok := list.Leave(key); ok {
		t.Fatal("expected second leave to be a no-op")
	}
}

func TestRemoveRequiresLeaving(t *testing.T) {
	list := List{}.Add(Enter("tx-1", []event.Event{event.VotingPeriodWasFinished{}})...)
	if _, ok := list.Remove(Key{TransactionID: "tx-1"}); ok {
		t.Fatal("expected entered entry to survive removal")
	}
}

func TestListIsImmutable(t *testing.T) {
	base := List{}.Add(Enter("tx-1", []event.Event{event.TitleChanged{Title: "x"}})...)
	key := Key{TransactionID: "tx-1"}

	leaving, _ := base.Leave(key)
	if got, _ := base.Get(key); got.Phase != PhaseEntered {
		t.Fatalf("base phase = %s, want entered", got.Phase)
	}
	removed, _ := leaving.Remove(key)
	if leaving.Len() != 1 || removed.Len() != 0 {
		t.Fatalf("lens = %d, %d; want 1, 0", leaving.Len(), removed.Len())
	}

	entries := base.Entries()
	entries[0].Phase = PhaseLeaving
	if got, _ := base.Get(key); got.Phase != PhaseEntered {
		t.Fatal("Entries must return a copy")
	}
}

func TestAddSkipsDuplicateKeys(t *testing.T) {
	entries := Enter("tx-1", []event.Event{event.TitleChanged{Title: "x"}})
	list := List{}.Add(entries...).Add(entries...)
	if list.Len() != 1 {
		t.Fatalf("len = %d, want 1", list.Len())
	}
}

func TestTimeout(t *testing.T) {
	if got := Timeout(PhaseEntered); got != 5*time.Second {
		t.Fatalf("entered timeout = %s, want 5s", got)
	}
	if got := Timeout(PhaseLeaving); got != 2*time.Second {
		t.Fatalf("leaving timeout = %s, want 2s", got)
	}
	if got := Timeout("gone"); got != 0 {
		t.Fatalf("unknown timeout = %s, want 0", got)
	}
}
