package conference

import (
	"slices"

	"github.com/google/uuid"
)

// AbstractType distinguishes talk formats.
type AbstractType string

const (
	AbstractTypeTalk    AbstractType = "talk"
	AbstractTypeHandsOn AbstractType = "hands_on"
)

// AbstractStatus is the review outcome of an abstract.
type AbstractStatus string

const (
	AbstractStatusProposed AbstractStatus = "proposed"
	AbstractStatusAccepted AbstractStatus = "accepted"
	AbstractStatusRejected AbstractStatus = "rejected"
)

// Abstract is a talk proposal.
type Abstract struct {
	ID       uuid.UUID      `json:"id"`
	Text     string         `json:"text"`
	Speakers []string       `json:"speakers,omitempty"`
	Duration float64        `json:"duration"`
	Type     AbstractType   `json:"type"`
	Status   AbstractStatus `json:"status"`
}

func (a Abstract) clone() Abstract {
	a.Speakers = slices.Clone(a.Speakers)
	return a
}

func (a Abstract) equal(other Abstract) bool {
	return a.ID == other.ID &&
		a.Text == other.Text &&
		a.Duration == other.Duration &&
		a.Type == other.Type &&
		a.Status == other.Status &&
		slices.Equal(a.Speakers, other.Speakers)
}
