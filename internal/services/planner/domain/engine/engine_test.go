package engine

import (
	"errors"
	"testing"

	"github.com/louisbranch/confplan/internal/services/planner/domain/behaviour"
	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

func TestHandleDecidesAndFolds(t *testing.T) {
	state := conference.State{Title: "before", AvailableSlotsForTalks: 2}
	result, err := Handle(state, command.DecideNumberOfSlots{Slots: 5})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if result.State.AvailableSlotsForTalks != 5 {
		t.Fatalf("slots = %d, want 5", result.State.AvailableSlotsForTalks)
	}
	if len(result.Events) != 1 || result.Events[0] != (event.NumberOfSlotsDecided{Slots: 5}) {
		t.Fatalf("events = %#v, want [NumberOfSlotsDecided(5)]", result.Events)
	}
	if state.AvailableSlotsForTalks != 2 {
		t.Fatalf("input slots = %d, want 2", state.AvailableSlotsForTalks)
	}
}

func TestHandlePropagatesBehaviourErrors(t *testing.T) {
	_, err := Handle(conference.State{}, nil)
	if !errors.Is(err, behaviour.ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}
}
