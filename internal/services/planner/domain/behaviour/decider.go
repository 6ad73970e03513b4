// Package behaviour decides which events a conference command produces.
//
// Deciders are pure: the same command and state always yield the same
// events, nothing is read from or written to the outside world, and no
// identifiers are minted here. Well-typed commands are never rejected at
// this layer; policy such as "no votes after the voting period finished" is
// left to the authoritative log or to callers.
package behaviour

import (
	"errors"
	"fmt"

	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

const rejectionCodeCommandUnknown = "COMMAND_UNKNOWN"

// ErrUnknownCommand indicates a nil or unregistered command variant.
var ErrUnknownCommand = errors.New("command is not handled")

// Rejection captures a domain-level reason a command was declined.
type Rejection struct {
	Code    string
	Message string
	err     error
}

func (r *Rejection) Error() string { return r.Code + ": " + r.Message }
func (r *Rejection) Unwrap() error { return r.err }

// Decide returns the events a command produces against the current state.
func Decide(cmd command.Command, state conference.State) ([]event.Event, error) {
	switch c := cmd.(type) {
	case command.ScheduleConference:
		return accept(event.ConferenceScheduled{Conference: c.Conference.Clone()}), nil
	case command.ChangeTitle:
		return accept(event.TitleChanged{Title: c.Title}), nil
	case command.DecideNumberOfSlots:
		return accept(event.NumberOfSlotsDecided{Slots: c.Slots}), nil
	case command.AddOrganizerToConference:
		return accept(event.OrganizerAddedToConference{Organizer: c.Organizer}), nil
	case command.RemoveOrganizerFromConference:
		return accept(event.OrganizerRemovedFromConference{Organizer: c.Organizer}), nil
	case command.Vote:
		return accept(event.VotingWasIssued{Voting: c.Voting}), nil
	case command.RevokeVoting:
		return accept(event.VotingWasRevoked{Voting: c.Voting}), nil
	case command.FinishVotingPeriod:
		return accept(event.VotingPeriodWasFinished{}), nil
	case command.ReopenVotingPeriod:
		return accept(event.VotingPeriodWasReopened{}), nil
	}
	return nil, &Rejection{
		Code:    rejectionCodeCommandUnknown,
		Message: fmt.Sprintf("no decider for %T", cmd),
		err:     ErrUnknownCommand,
	}
}

func accept(events ...event.Event) []event.Event {
	return events
}
