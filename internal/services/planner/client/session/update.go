package session

import (
	"errors"
	"fmt"

	"github.com/louisbranch/confplan/internal/services/planner/client/notification"
	"github.com/louisbranch/confplan/internal/services/planner/client/whatif"
	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/engine"
	"github.com/louisbranch/confplan/internal/services/planner/domain/projection"
	"github.com/louisbranch/confplan/internal/services/planner/wire"
)

// ErrScheduleWhileSimulating indicates a ScheduleConference issued inside a
// what-if branch. A branch only ever targets the conference it was begun on.
var ErrScheduleWhileSimulating = errors.New("cannot schedule a conference while simulating")

// Update applies one message. A non-nil error means the session can no
// longer trust its state and must stop.
func Update(m Model, msg Msg) (Model, []Effect, error) {
	switch msg := msg.(type) {
	case Inbound:
		return receive(m, msg.Message)
	case Query:
		return m, []Effect{SendQuery{Parameter: msg.Parameter}}, nil
	case Issue:
		return issue(m, msg.Command)
	case ToggleWhatIf:
		return toggle(m), nil, nil
	case MakeItSo:
		return commit(m)
	case NotificationElapsed:
		return elapse(m, msg)
	}
	return m, nil, fmt.Errorf("unhandled session message %T", msg)
}

func receive(m Model, msg wire.Inbound) (Model, []Effect, error) {
	switch msg := msg.(type) {
	case wire.Connected:
		effects := []Effect{
			SendQuery{Parameter: wire.ConferencesQuery()},
			SendQuery{Parameter: wire.OrganizersQuery()},
		}
		if m.Active != nil {
			effects = append(effects, SendQuery{Parameter: wire.ConferenceQuery(m.Active.ID)})
		}
		return m, effects, nil
	case wire.QueryResponse:
		return respond(m, msg.Result), nil, nil
	case wire.Events:
		return confirm(m, msg)
	}
	return m, nil, fmt.Errorf("unhandled inbound message %T", msg)
}

func respond(m Model, result wire.QueryResult) Model {
	if !result.Handled {
		return m
	}
	switch result.Type {
	case wire.ResultConference:
		if result.Conference == nil {
			return m
		}
		state := result.Conference.Clone()
		if m.Active == nil || m.Active.ID != state.ID {
			m.Mode = whatif.Live()
		}
		if m.Scheduling == state.ID {
			m.Scheduling = conference.ID{}
		}
		return m.withActive(state)
	case wire.ResultConferences:
		m.Conferences = result.Conferences
	case wire.ResultOrganizers:
		m.Organizers = result.Organizers
	}
	return m
}

func issue(m Model, cmd command.Command) (Model, []Effect, error) {
	if m.Mode.Simulating() {
		if _, ok := cmd.(command.ScheduleConference); ok {
			m.LastError = ErrScheduleWhileSimulating
			return m, nil, nil
		}
		branch, _ := m.Mode.Branch()
		tx, err := m.Transactions.Mint()
		if err != nil {
			m.LastError = err
			return m, nil, nil
		}
		header := command.NewHeader(tx, command.StreamFor(cmd, branch.State.ID))
		mode, _, err := m.Mode.Apply(header, cmd)
		if err != nil {
			m.LastError = err
			return m, nil, nil
		}
		m.Mode = mode
		m.LastError = nil
		return m, nil, nil
	}

	_, schedule := cmd.(command.ScheduleConference)
	if m.Active == nil && !schedule {
		return m, nil, nil
	}
	var live conference.State
	if m.Active != nil {
		live = *m.Active
	}
	// Live state only moves on confirmation; deciding here validates the
	// command without folding its events.
	if _, err := engine.Handle(live, cmd); err != nil {
		m.LastError = err
		return m, nil, nil
	}
	correlator, tx, err := m.Transactions.Begin()
	if err != nil {
		m.LastError = err
		return m, nil, nil
	}
	stream := command.StreamFor(cmd, live.ID)
	header := command.NewHeader(tx, stream)
	m.Transactions = correlator
	m.LastError = nil
	if schedule {
		m.Scheduling = stream
	}
	return m, []Effect{SendCommand{Header: header, Command: cmd}}, nil
}

func toggle(m Model) Model {
	if m.Mode.Simulating() {
		m.Mode = m.Mode.Discard()
		return m
	}
	if m.Active == nil {
		return m
	}
	m.Mode = whatif.Begin(*m.Active)
	return m
}

func commit(m Model) (Model, []Effect, error) {
	mode, c, err := m.Mode.Commit()
	if err != nil {
		return m, nil, nil
	}
	m.Mode = mode
	m = m.withActive(c.State)
	m.Transactions = m.Transactions.Register(c.TransactionIDs()...)
	effects := make([]Effect, 0, len(c.Pending)+1)
	for _, p := range c.Pending {
		effects = append(effects, SendCommand{Header: p.Header, Command: p.Command})
	}
	effects = append(effects, SendQuery{Parameter: wire.ConferenceQuery(c.State.ID)})
	return m, effects, nil
}

func confirm(m Model, batch wire.Events) (Model, []Effect, error) {
	stream, err := batch.Header.Conference()
	if err != nil {
		return m, nil, nil
	}
	var base conference.State
	switch {
	case m.Active != nil && m.Active.ID == stream:
		base = *m.Active
	case !m.Scheduling.IsZero() && m.Scheduling == stream:
		// The first confirmation of a conference scheduled here opens it.
		m.Scheduling = conference.ID{}
		m.Mode = whatif.Live()
	default:
		return m, nil, nil
	}
	next, err := projection.Replay(base, batch.Events)
	if err != nil {
		return m, nil, fmt.Errorf("confirm %s: %w", batch.Header.TransactionID, err)
	}
	m = m.withActive(next)

	correlator, confirmation := m.Transactions.Confirm(batch.Header.TransactionID, batch.Events)
	m.Transactions = correlator
	if !confirmation.Matched {
		return m, nil, nil
	}
	m.Notifications = m.Notifications.Add(confirmation.Notifications...)
	effects := make([]Effect, 0, len(confirmation.Notifications))
	for _, entry := range confirmation.Notifications {
		effects = append(effects, Schedule{
			After: notification.Timeout(notification.PhaseEntered),
			Msg:   NotificationElapsed{Key: entry.Key, Phase: notification.PhaseEntered},
		})
	}
	return m, effects, nil
}

func elapse(m Model, msg NotificationElapsed) (Model, []Effect, error) {
	switch msg.Phase {
	case notification.PhaseEntered:
		list, ok := m.Notifications.Leave(msg.Key)
		if !ok {
			return m, nil, nil
		}
		m.Notifications = list
		return m, []Effect{Schedule{
			After: notification.Timeout(notification.PhaseLeaving),
			Msg:   NotificationElapsed{Key: msg.Key, Phase: notification.PhaseLeaving},
		}}, nil
	case notification.PhaseLeaving:
		m.Notifications, _ = m.Notifications.Remove(msg.Key)
	}
	return m, nil, nil
}
