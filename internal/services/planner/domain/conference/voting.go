package conference

import (
	"fmt"

	"github.com/google/uuid"
)

// VotingKind separates scored votes from vetoes.
type VotingKind string

const (
	VotingKindVote VotingKind = "vote"
	VotingKindVeto VotingKind = "veto"
)

// Points is the score of a vote.
type Points int

const (
	PointsZero Points = 0
	PointsOne  Points = 1
	PointsTwo  Points = 2
)

// Valid reports whether p is one of the defined scores.
func (p Points) Valid() bool {
	return p >= PointsZero && p <= PointsTwo
}

// Voting is one organizer's verdict on one abstract.
type Voting struct {
	Kind        VotingKind `json:"kind"`
	AbstractID  uuid.UUID  `json:"abstract_id"`
	OrganizerID uuid.UUID  `json:"organizer_id"`
	// Points is only meaningful for VotingKindVote.
	Points Points `json:"points,omitempty"`
}

// Vote builds a scored voting.
func Vote(abstractID, organizerID uuid.UUID, points Points) Voting {
	return Voting{Kind: VotingKindVote, AbstractID: abstractID, OrganizerID: organizerID, Points: points}
}

// Veto builds a veto.
func Veto(abstractID, organizerID uuid.UUID) Voting {
	return Voting{Kind: VotingKindVeto, AbstractID: abstractID, OrganizerID: organizerID}
}

func (v Voting) sameIdentity(other Voting) bool {
	return v.AbstractID == other.AbstractID && v.OrganizerID == other.OrganizerID
}

// String renders the voting for logs and the planner CLI.
func (v Voting) String() string {
	if v.Kind == VotingKindVeto {
		return fmt.Sprintf("veto(%s by %s)", v.AbstractID, v.OrganizerID)
	}
	return fmt.Sprintf("vote(%s by %s: %d)", v.AbstractID, v.OrganizerID, v.Points)
}
