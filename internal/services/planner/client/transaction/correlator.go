// Package transaction correlates outbound commands with the confirmation
// batches that later report their events.
package transaction

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/louisbranch/confplan/internal/platform/id"
	"github.com/louisbranch/confplan/internal/services/planner/client/notification"
	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

// ErrSourceRequired indicates a correlator built without an id source.
var ErrSourceRequired = errors.New("transaction id source is required")

// Source mints transaction ids. Ids only need to be unique.
type Source func() (command.TransactionID, error)

// RandomSource mints random 128-bit ids.
func RandomSource() Source {
	return func() (command.TransactionID, error) {
		value, err := id.NewID()
		if err != nil {
			return "", err
		}
		return command.TransactionID(value), nil
	}
}

// Confirmation is the bookkeeping outcome of one confirmation batch.
type Confirmation struct {
	// Matched reports whether the transaction was open in this session.
	Matched bool
	// Notifications holds one Entered entry per event when Matched.
	Notifications []notification.Entry
}

// Correlator tracks the open transaction set. It is a value: every method
// that changes the set returns a new Correlator and leaves the receiver as
// it was.
type Correlator struct {
	source Source
	open   map[command.TransactionID]struct{}
}

// New returns an empty correlator minting ids from source.
func New(source Source) Correlator {
	return Correlator{source: source}
}

// Mint returns a fresh id without opening it. The what-if branch uses this
// to address commands that are not sent yet.
func (c Correlator) Mint() (command.TransactionID, error) {
	if c.source == nil {
		return "", ErrSourceRequired
	}
	tx, err := c.source()
	if err != nil {
		return "", fmt.Errorf("mint transaction id: %w", err)
	}
	return tx, nil
}

// Begin mints a fresh id and adds it to the open set.
func (c Correlator) Begin() (Correlator, command.TransactionID, error) {
	tx, err := c.Mint()
	if err != nil {
		return c, "", err
	}
	return c.Register(tx), tx, nil
}

// Register adds already minted ids to the open set.
func (c Correlator) Register(ids ...command.TransactionID) Correlator {
	if len(ids) == 0 {
		return c
	}
	open := maps.Clone(c.open)
	if open == nil {
		open = make(map[command.TransactionID]struct{}, len(ids))
	}
	for _, tx := range ids {
		open[tx] = struct{}{}
	}
	return Correlator{source: c.source, open: open}
}

// Confirm closes tx if it is open. Unknown ids are not an error: they belong
// to other sessions or other organizers, and produce no notifications.
func (c Correlator) Confirm(tx command.TransactionID, events []event.Event) (Correlator, Confirmation) {
	if !c.IsOpen(tx) {
		return c, Confirmation{}
	}
	open := maps.Clone(c.open)
	delete(open, tx)
	return Correlator{source: c.source, open: open}, Confirmation{
		Matched:       true,
		Notifications: notification.Enter(tx, events),
	}
}

// IsOpen reports whether tx awaits confirmation.
func (c Correlator) IsOpen(tx command.TransactionID) bool {
	_, ok := c.open[tx]
	return ok
}

// Len returns the number of open transactions.
func (c Correlator) Len() int { return len(c.open) }

// Open returns the open ids, sorted.
func (c Correlator) Open() []command.TransactionID {
	return slices.Sorted(maps.Keys(c.open))
}
