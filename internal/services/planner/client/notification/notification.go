// Package notification tracks the transient entries shown when a confirmed
// transaction's events arrive.
//
// Each entry moves Entered -> Leaving -> removed. The package only holds the
// collection and its transitions; scheduling the timeouts that drive them is
// the session loop's job.
package notification

import (
	"slices"
	"time"

	"github.com/louisbranch/confplan/internal/platform/timeouts"
	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

// Phase is the animation phase of an entry.
type Phase string

const (
	PhaseEntered Phase = "entered"
	PhaseLeaving Phase = "leaving"
)

// Timeout returns how long an entry stays in phase before advancing.
func Timeout(phase Phase) time.Duration {
	switch phase {
	case PhaseEntered:
		return timeouts.NotificationEntered
	case PhaseLeaving:
		return timeouts.NotificationLeaving
	}
	return 0
}

// Key identifies an entry by its transaction and the event's position in the
// confirmation batch. Events are values and may repeat within a batch.
type Key struct {
	TransactionID command.TransactionID
	Index         int
}

// Entry is one visible notification.
type Entry struct {
	Key   Key
	Event event.Event
	Phase Phase
}

// Enter builds one Entered entry per event in a confirmation batch.
func Enter(tx command.TransactionID, events []event.Event) []Entry {
	entries := make([]Entry, 0, len(events))
	for i, evt := range events {
		entries = append(entries, Entry{
			Key:   Key{TransactionID: tx, Index: i},
			Event: evt,
			Phase: PhaseEntered,
		})
	}
	return entries
}

// List is an immutable collection of entries in arrival order.
type List struct {
	entries []Entry
}

// Len returns the number of entries.
func (l List) Len() int { return len(l.entries) }

// Entries returns a copy of the entries.
func (l List) Entries() []Entry { return slices.Clone(l.entries) }

// Get returns the entry with key.
func (l List) Get(key Key) (Entry, bool) {
	i := l.index(key)
	if i < 0 {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Add appends entries. An entry whose key is already present is skipped.
func (l List) Add(entries ...Entry) List {
	out := slices.Clone(l.entries)
	for _, entry := range entries {
		if slices.IndexFunc(out, func(e Entry) bool { return e.Key == entry.Key }) >= 0 {
			continue
		}
		out = append(out, entry)
	}
	return List{entries: out}
}

// Leave moves an Entered entry to Leaving. It reports false, leaving the
// list unchanged, when the entry is missing or already leaving.
func (l List) Leave(key Key) (List, bool) {
	i := l.index(key)
	if i < 0 || l.entries[i].Phase != PhaseEntered {
		return l, false
	}
	out := slices.Clone(l.entries)
	out[i].Phase = PhaseLeaving
	return List{entries: out}, true
}

// Remove deletes a Leaving entry. It reports false, leaving the list
// unchanged, when no Leaving entry has key; repeated removals are no-ops.
func (l List) Remove(key Key) (List, bool) {
	i := l.index(key)
	if i < 0 || l.entries[i].Phase != PhaseLeaving {
		return l, false
	}
	return List{entries: slices.Delete(slices.Clone(l.entries), i, i+1)}, true
}

func (l List) index(key Key) int {
	return slices.IndexFunc(l.entries, func(e Entry) bool { return e.Key == key })
}
