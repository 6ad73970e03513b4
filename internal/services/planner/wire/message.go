package wire

import (
	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

// QueryKind selects what a query asks for.
type QueryKind string

const (
	QueryConference  QueryKind = "conference"
	QueryConferences QueryKind = "conferences"
	QueryOrganizers  QueryKind = "organizers"
)

// QueryParameter is the subject of a query. ConferenceID is only set for
// QueryConference.
type QueryParameter struct {
	Kind         QueryKind     `json:"parameter"`
	ConferenceID conference.ID `json:"conference_id,omitzero"`
}

// ConferenceQuery asks for one conference's replayed state.
func ConferenceQuery(id conference.ID) QueryParameter {
	return QueryParameter{Kind: QueryConference, ConferenceID: id}
}

// ConferencesQuery asks for every known conference.
func ConferencesQuery() QueryParameter { return QueryParameter{Kind: QueryConferences} }

// OrganizersQuery asks for every registered organizer.
func OrganizersQuery() QueryParameter { return QueryParameter{Kind: QueryOrganizers} }

// ResultType tells which field of a handled QueryResult is populated.
type ResultType string

const (
	ResultConference         ResultType = "conference"
	ResultConferences        ResultType = "conferences"
	ResultOrganizers         ResultType = "organizers"
	ResultConferenceNotFound ResultType = "conference_not_found"
)

// QueryResult answers a query. A result with Handled false carries nothing.
type QueryResult struct {
	Handled     bool                   `json:"handled"`
	Type        ResultType             `json:"type,omitempty"`
	Conference  *conference.State      `json:"conference,omitempty"`
	Conferences []conference.State     `json:"conferences,omitempty"`
	Organizers  []conference.Organizer `json:"organizers,omitempty"`
}

// NotHandled is the answer of a collaborator that could not serve a query.
func NotHandled() QueryResult { return QueryResult{} }

// ConferenceFound answers a conference query.
func ConferenceFound(state conference.State) QueryResult {
	state = state.Clone()
	return QueryResult{Handled: true, Type: ResultConference, Conference: &state}
}

// ConferenceNotFound answers a conference query for an unknown stream.
func ConferenceNotFound() QueryResult {
	return QueryResult{Handled: true, Type: ResultConferenceNotFound}
}

// ConferencesFound answers a conferences query.
func ConferencesFound(list []conference.State) QueryResult {
	return QueryResult{Handled: true, Type: ResultConferences, Conferences: list}
}

// OrganizersFound answers an organizers query.
func OrganizersFound(list []conference.Organizer) QueryResult {
	return QueryResult{Handled: true, Type: ResultOrganizers, Organizers: list}
}

// Outbound is a message sent by a session to the event log.
type Outbound interface {
	isOutbound()
}

// Query asks the event log for state.
type Query struct {
	Parameter QueryParameter
}

// Command asks the event log to decide and append a command.
type Command struct {
	Header  command.Header
	Command command.Command
}

func (Query) isOutbound()   {}
func (Command) isOutbound() {}

// Inbound is a message delivered to a session.
type Inbound interface {
	isInbound()
}

// Connected reports that the transport reached the event log.
type Connected struct{}

// QueryResponse carries the answer to a previous query.
type QueryResponse struct {
	Result QueryResult
}

// Events is a confirmation batch: the events appended by one command.
type Events struct {
	Header command.Header
	Events []event.Event
}

func (Connected) isInbound()     {}
func (QueryResponse) isInbound() {}
func (Events) isInbound()        {}
