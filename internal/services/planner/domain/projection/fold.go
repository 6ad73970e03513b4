// Package projection folds conference events into aggregate state.
package projection

import (
	"errors"
	"fmt"

	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

// ErrUnknownEvent indicates an event variant the fold cannot apply. It means
// the client and the authoritative log disagree about the protocol and must
// never be swallowed.
var ErrUnknownEvent = errors.New("event is not folded")

// Fold applies one event to a conference state and returns the new state.
// The input is never modified.
func Fold(state conference.State, evt event.Event) (conference.State, error) {
	switch e := evt.(type) {
	case event.ConferenceScheduled:
		return e.Conference.Clone(), nil
	case event.TitleChanged:
		state.Title = e.Title
		return state, nil
	case event.NumberOfSlotsDecided:
		state.AvailableSlotsForTalks = e.Slots
		return state, nil
	case event.OrganizerAddedToConference:
		return state.WithOrganizer(e.Organizer), nil
	case event.OrganizerRemovedFromConference:
		return state.WithoutOrganizer(e.Organizer.ID), nil
	case event.VotingWasIssued:
		return state.WithVoting(e.Voting), nil
	case event.VotingWasRevoked:
		return state.WithoutVoting(e.Voting), nil
	case event.VotingPeriodWasFinished:
		state.VotingPeriod = conference.VotingPeriodFinished
		return state, nil
	case event.VotingPeriodWasReopened:
		state.VotingPeriod = conference.VotingPeriodInProgress
		return state, nil
	}
	return state, fmt.Errorf("%w: %T", ErrUnknownEvent, evt)
}

// Replay folds events in order starting from init. It stops at the first
// event that cannot be folded and returns the state reached before it.
func Replay(init conference.State, events []event.Event) (conference.State, error) {
	state := init
	for i, evt := range events {
		next, err := Fold(state, evt)
		if err != nil {
			return state, fmt.Errorf("replay event %d: %w", i, err)
		}
		state = next
	}
	return state, nil
}
