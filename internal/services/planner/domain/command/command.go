package command

import "github.com/louisbranch/confplan/internal/services/planner/domain/conference"

// Name is the stable wire name of a command variant.
type Name string

const (
	NameScheduleConference            Name = "schedule_conference"
	NameChangeTitle                   Name = "change_title"
	NameDecideNumberOfSlots           Name = "decide_number_of_slots"
	NameAddOrganizerToConference      Name = "add_organizer_to_conference"
	NameRemoveOrganizerFromConference Name = "remove_organizer_from_conference"
	NameVote                          Name = "vote"
	NameRevokeVoting                  Name = "revoke_voting"
	NameFinishVotingPeriod            Name = "finish_voting_period"
	NameReopenVotingPeriod            Name = "reopen_voting_period"
)

// Command is a requested change to a conference.
type Command interface {
	// Name returns the variant's wire name.
	Name() Name
	isCommand()
}

// ScheduleConference creates a conference identity from a snapshot.
type ScheduleConference struct {
	Conference conference.State `json:"conference"`
}

// ChangeTitle renames the conference.
type ChangeTitle struct {
	Title string `json:"title"`
}

// DecideNumberOfSlots sets the talk slot count. Callers validate the range.
type DecideNumberOfSlots struct {
	Slots int `json:"slots"`
}

// AddOrganizerToConference adds an organizer.
type AddOrganizerToConference struct {
	Organizer conference.Organizer `json:"organizer"`
}

// RemoveOrganizerFromConference removes an organizer.
type RemoveOrganizerFromConference struct {
	Organizer conference.Organizer `json:"organizer"`
}

// Vote casts a vote or veto.
type Vote struct {
	Voting conference.Voting `json:"voting"`
}

// RevokeVoting withdraws a vote or veto.
type RevokeVoting struct {
	Voting conference.Voting `json:"voting"`
}

// FinishVotingPeriod closes voting.
type FinishVotingPeriod struct{}

// ReopenVotingPeriod reopens voting.
type ReopenVotingPeriod struct{}

func (ScheduleConference) Name() Name            { return NameScheduleConference }
func (ChangeTitle) Name() Name                   { return NameChangeTitle }
func (DecideNumberOfSlots) Name() Name           { return NameDecideNumberOfSlots }
func (AddOrganizerToConference) Name() Name      { return NameAddOrganizerToConference }
func (RemoveOrganizerFromConference) Name() Name { return NameRemoveOrganizerFromConference }
func (Vote) Name() Name                          { return NameVote }
func (RevokeVoting) Name() Name                  { return NameRevokeVoting }
func (FinishVotingPeriod) Name() Name            { return NameFinishVotingPeriod }
func (ReopenVotingPeriod) Name() Name            { return NameReopenVotingPeriod }

func (ScheduleConference) isCommand()            {}
func (ChangeTitle) isCommand()                   {}
func (DecideNumberOfSlots) isCommand()           {}
func (AddOrganizerToConference) isCommand()      {}
func (RemoveOrganizerFromConference) isCommand() {}
func (Vote) isCommand()                          {}
func (RevokeVoting) isCommand()                  {}
func (FinishVotingPeriod) isCommand()            {}
func (ReopenVotingPeriod) isCommand()            {}

// StreamFor returns the conference a command addresses when issued while
// viewing active. Only ScheduleConference names its own stream.
func StreamFor(cmd Command, active conference.ID) conference.ID {
	if schedule, ok := cmd.(ScheduleConference); ok {
		return schedule.Conference.ID
	}
	return active
}
