// Package engine runs a command through the behaviour and projection
// engines in one step.
package engine

import (
	"fmt"

	"github.com/louisbranch/confplan/internal/services/planner/domain/behaviour"
	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
	"github.com/louisbranch/confplan/internal/services/planner/domain/projection"
)

// Result is the outcome of handling one command.
type Result struct {
	// State is the conference after folding Events.
	State conference.State
	// Events are the facts the command produced, in order.
	Events []event.Event
}

// Handle decides a command against state and folds the produced events.
// On error the caller's state is unaffected.
func Handle(state conference.State, cmd command.Command) (Result, error) {
	events, err := behaviour.Decide(cmd, state)
	if err != nil {
		return Result{}, err
	}
	next, err := projection.Replay(state, events)
	if err != nil {
		return Result{}, fmt.Errorf("fold %s: %w", cmd.Name(), err)
	}
	return Result{State: next, Events: events}, nil
}
