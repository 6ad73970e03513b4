package session

import (
	"github.com/louisbranch/confplan/internal/services/planner/client/notification"
	"github.com/louisbranch/confplan/internal/services/planner/client/transaction"
	"github.com/louisbranch/confplan/internal/services/planner/client/whatif"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
)

// Model is the whole client state of one session.
type Model struct {
	// Active is the live conference being viewed, nil until one is queried.
	Active *conference.State
	// Conferences is the last known list of conferences.
	Conferences []conference.State
	// Organizers is the last known list of registered organizers.
	Organizers []conference.Organizer
	// Mode is live or a running what-if branch.
	Mode whatif.Mode
	// Transactions holds the open transaction set.
	Transactions transaction.Correlator
	// Notifications are the confirmations currently on display.
	Notifications notification.List
	// Scheduling is the stream of a ScheduleConference sent from live mode
	// and not yet confirmed. Its first confirmation becomes Active.
	Scheduling conference.ID
	// LastError is the last command that could not be issued.
	LastError error
}

// NewModel returns an empty live session minting transaction ids from source.
func NewModel(source transaction.Source) Model {
	return Model{
		Mode:         whatif.Live(),
		Transactions: transaction.New(source),
	}
}

// View returns the conference to display: the branch while simulating,
// otherwise the live conference.
func (m Model) View() (conference.State, bool) {
	if branch, ok := m.Mode.Branch(); ok {
		return branch.State, true
	}
	if m.Active == nil {
		return conference.State{}, false
	}
	return *m.Active, true
}

func (m Model) withActive(state conference.State) Model {
	m.Active = &state
	return m
}
