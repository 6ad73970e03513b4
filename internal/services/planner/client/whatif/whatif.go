// Package whatif simulates commands on a provisional branch of a conference
// before any of them is sent to the authoritative log.
//
// A Mode is either live (no branch) or simulating. Simulating never touches
// the live conference or the open transaction set; both only change when the
// session applies a Commit.
package whatif

import (
	"errors"
	"slices"

	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/engine"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

// ErrNotSimulating indicates a branch operation while live.
var ErrNotSimulating = errors.New("no what-if branch is active")

// Branch is a provisional divergence from the live conference.
type Branch struct {
	// Base is the live conference when the branch started.
	Base conference.State
	// State is Base with every provisional event folded in.
	State conference.State
	// Events are the provisional events, in command order.
	Events []event.Event
	// Pending are the commands to send on commit, in issue order.
	Pending []command.Envelope
}

// Mode is the current view mode.
type Mode struct {
	branch *Branch
}

// Live returns the live mode.
func Live() Mode { return Mode{} }

// Begin starts a branch from the live conference.
func Begin(live conference.State) Mode {
	return Mode{branch: &Branch{Base: live.Clone(), State: live.Clone()}}
}

// Simulating reports whether a branch is active.
func (m Mode) Simulating() bool { return m.branch != nil }

// Branch returns a copy of the active branch.
func (m Mode) Branch() (Branch, bool) {
	if m.branch == nil {
		return Branch{}, false
	}
	b := *m.branch
	b.Events = slices.Clone(b.Events)
	b.Pending = slices.Clone(b.Pending)
	return b, true
}

// Apply runs cmd on the branch and records it for commit under header. On
// error the mode is returned unchanged.
func (m Mode) Apply(header command.Header, cmd command.Command) (Mode, []event.Event, error) {
	if m.branch == nil {
		return m, nil, ErrNotSimulating
	}
	result, err := engine.Handle(m.branch.State, cmd)
	if err != nil {
		return m, nil, err
	}
	next := &Branch{
		Base:    m.branch.Base,
		State:   result.State,
		Events:  append(slices.Clone(m.branch.Events), result.Events...),
		Pending: append(slices.Clone(m.branch.Pending), command.Envelope{Header: header, Command: cmd}),
	}
	return Mode{branch: next}, result.Events, nil
}

// Discard drops the branch.
func (m Mode) Discard() Mode { return Live() }

// Commit is what the session applies when a branch is made authoritative.
type Commit struct {
	// State replaces the live conference optimistically.
	State conference.State
	// Pending are the commands to send, in original order.
	Pending []command.Envelope
}

// TransactionIDs returns the ids of the pending commands, in order.
func (c Commit) TransactionIDs() []command.TransactionID {
	ids := make([]command.TransactionID, 0, len(c.Pending))
	for _, p := range c.Pending {
		ids = append(ids, p.Header.TransactionID)
	}
	return ids
}

// Commit ends the branch and returns what must be applied and sent.
func (m Mode) Commit() (Mode, Commit, error) {
	if m.branch == nil {
		return m, Commit{}, ErrNotSimulating
	}
	return Live(), Commit{
		State:   m.branch.State.Clone(),
		Pending: slices.Clone(m.branch.Pending),
	}, nil
}
