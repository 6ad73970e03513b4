package conference

import (
	"slices"

	"github.com/google/uuid"
)

// CallForPapers is the submission window status.
type CallForPapers string

const (
	CallForPapersNotOpened CallForPapers = "not_opened"
	CallForPapersOpen      CallForPapers = "open"
	CallForPapersClosed    CallForPapers = "closed"
)

// VotingPeriod is the organizer voting status.
type VotingPeriod string

const (
	VotingPeriodInProgress VotingPeriod = "in_progress"
	VotingPeriodFinished   VotingPeriod = "finished"
)

// State captures the replayed conference aggregate.
type State struct {
	// ID is assigned by the ScheduleConference snapshot and never changes.
	ID ID `json:"id"`
	// Title is the display title organizers agreed on.
	Title string `json:"title"`
	// CallForPapers tracks whether abstracts may still be submitted.
	CallForPapers CallForPapers `json:"call_for_papers"`
	// VotingPeriod tracks whether organizers are still voting.
	VotingPeriod VotingPeriod `json:"voting_period"`
	// Abstracts are the proposals organizers vote on.
	Abstracts []Abstract `json:"abstracts,omitempty"`
	// Votings hold at most one entry per (abstract, organizer).
	Votings []Voting `json:"votings,omitempty"`
	// Organizers is a set keyed by organizer id, in insertion order.
	Organizers []Organizer `json:"organizers,omitempty"`
	// AvailableSlotsForTalks is how many talks the program can hold.
	AvailableSlotsForTalks int `json:"available_slots_for_talks"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Abstracts = nil
	if s.Abstracts != nil {
		out.Abstracts = make([]Abstract, len(s.Abstracts))
		for i, a := range s.Abstracts {
			out.Abstracts[i] = a.clone()
		}
	}
	out.Votings = slices.Clone(s.Votings)
	out.Organizers = slices.Clone(s.Organizers)
	return out
}

// Equal reports whether two states hold the same facts.
func (s State) Equal(other State) bool {
	if s.ID != other.ID ||
		s.Title != other.Title ||
		s.CallForPapers != other.CallForPapers ||
		s.VotingPeriod != other.VotingPeriod ||
		s.AvailableSlotsForTalks != other.AvailableSlotsForTalks {
		return false
	}
	return slices.EqualFunc(s.Abstracts, other.Abstracts, Abstract.equal) &&
		slices.Equal(s.Votings, other.Votings) &&
		slices.Equal(s.Organizers, other.Organizers)
}

// HasOrganizer reports whether the organizer is part of the conference.
func (s State) HasOrganizer(id uuid.UUID) bool {
	return s.organizerIndex(id) >= 0
}

func (s State) organizerIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.Organizers, func(o Organizer) bool { return o.ID == id })
}

// VotingFor returns the voting an organizer cast for an abstract.
func (s State) VotingFor(abstractID, organizerID uuid.UUID) (Voting, bool) {
	i := slices.IndexFunc(s.Votings, func(v Voting) bool {
		return v.AbstractID == abstractID && v.OrganizerID == organizerID
	})
	if i < 0 {
		return Voting{}, false
	}
	return s.Votings[i], true
}

// WithOrganizer returns a copy of s with o added, or s unchanged when an
// organizer with the same id is already present.
func (s State) WithOrganizer(o Organizer) State {
	if s.HasOrganizer(o.ID) {
		return s
	}
	out := s
	out.Organizers = append(slices.Clone(s.Organizers), o)
	return out
}

// WithoutOrganizer returns a copy of s without the organizer id.
func (s State) WithoutOrganizer(id uuid.UUID) State {
	i := s.organizerIndex(id)
	if i < 0 {
		return s
	}
	out := s
	out.Organizers = slices.Delete(slices.Clone(s.Organizers), i, i+1)
	return out
}

// WithVoting returns a copy of s where v replaces any voting sharing its
// (abstract, organizer) identity, or is appended.
func (s State) WithVoting(v Voting) State {
	out := s
	votings := slices.Clone(s.Votings)
	if i := slices.IndexFunc(votings, v.sameIdentity); i >= 0 {
		votings[i] = v
	} else {
		votings = append(votings, v)
	}
	out.Votings = votings
	return out
}

// WithoutVoting returns a copy of s without the voting sharing v's identity.
func (s State) WithoutVoting(v Voting) State {
	i := slices.IndexFunc(s.Votings, v.sameIdentity)
	if i < 0 {
		return s
	}
	out := s
	out.Votings = slices.Delete(slices.Clone(s.Votings), i, i+1)
	return out
}
