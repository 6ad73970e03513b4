package conference

import "github.com/google/uuid"

// Organizer is a person allowed to plan and vote on a conference.
type Organizer struct {
	ID        uuid.UUID `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
}

// Name returns "Firstname Lastname".
func (o Organizer) Name() string {
	switch {
	case o.Firstname == "":
		return o.Lastname
	case o.Lastname == "":
		return o.Firstname
	}
	return o.Firstname + " " + o.Lastname
}
