package event

import "github.com/louisbranch/confplan/internal/services/planner/domain/conference"

// Name is the stable wire name of an event variant.
type Name string

const (
	NameConferenceScheduled            Name = "conference_scheduled"
	NameTitleChanged                   Name = "title_changed"
	NameNumberOfSlotsDecided           Name = "number_of_slots_decided"
	NameOrganizerAddedToConference     Name = "organizer_added_to_conference"
	NameOrganizerRemovedFromConference Name = "organizer_removed_from_conference"
	NameVotingWasIssued                Name = "voting_was_issued"
	NameVotingWasRevoked               Name = "voting_was_revoked"
	NameVotingPeriodWasFinished        Name = "voting_period_was_finished"
	NameVotingPeriodWasReopened        Name = "voting_period_was_reopened"
)

// Event is an immutable, already validated fact about a conference.
type Event interface {
	// Name returns the variant's wire name.
	Name() Name
	isEvent()
}

// ConferenceScheduled creates a conference from a full snapshot.
type ConferenceScheduled struct {
	Conference conference.State `json:"conference"`
}

// TitleChanged records a new title.
type TitleChanged struct {
	Title string `json:"title"`
}

// NumberOfSlotsDecided records how many talk slots the program has.
type NumberOfSlotsDecided struct {
	Slots int `json:"slots"`
}

// OrganizerAddedToConference records an organizer joining.
type OrganizerAddedToConference struct {
	Organizer conference.Organizer `json:"organizer"`
}

// OrganizerRemovedFromConference records an organizer leaving.
type OrganizerRemovedFromConference struct {
	Organizer conference.Organizer `json:"organizer"`
}

// VotingWasIssued records a vote or veto.
type VotingWasIssued struct {
	Voting conference.Voting `json:"voting"`
}

// VotingWasRevoked records a vote or veto being withdrawn.
type VotingWasRevoked struct {
	Voting conference.Voting `json:"voting"`
}

// VotingPeriodWasFinished closes voting.
type VotingPeriodWasFinished struct{}

// VotingPeriodWasReopened reopens voting.
type VotingPeriodWasReopened struct{}

func (ConferenceScheduled) Name() Name            { return NameConferenceScheduled }
func (TitleChanged) Name() Name                   { return NameTitleChanged }
func (NumberOfSlotsDecided) Name() Name           { return NameNumberOfSlotsDecided }
func (OrganizerAddedToConference) Name() Name     { return NameOrganizerAddedToConference }
func (OrganizerRemovedFromConference) Name() Name { return NameOrganizerRemovedFromConference }
func (VotingWasIssued) Name() Name                { return NameVotingWasIssued }
func (VotingWasRevoked) Name() Name               { return NameVotingWasRevoked }
func (VotingPeriodWasFinished) Name() Name        { return NameVotingPeriodWasFinished }
func (VotingPeriodWasReopened) Name() Name        { return NameVotingPeriodWasReopened }

func (ConferenceScheduled) isEvent()            {}
func (TitleChanged) isEvent()                   {}
func (NumberOfSlotsDecided) isEvent()           {}
func (OrganizerAddedToConference) isEvent()     {}
func (OrganizerRemovedFromConference) isEvent() {}
func (VotingWasIssued) isEvent()                {}
func (VotingWasRevoked) isEvent()               {}
func (VotingPeriodWasFinished) isEvent()        {}
func (VotingPeriodWasReopened) isEvent()        {}
