package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

var (
	// ErrMessageRequired indicates a nil message passed to an encoder.
	ErrMessageRequired = errors.New("message is required")
	// ErrUnknownKind indicates a frame kind with no message variant.
	ErrUnknownKind = errors.New("message kind is not registered")
	// ErrMalformed indicates a frame that is not valid for its kind.
	ErrMalformed = errors.New("message frame is malformed")
)

// Kind is the frame discriminator.
type Kind string

const (
	KindQuery         Kind = "query"
	KindCommand       Kind = "command"
	KindConnected     Kind = "connected"
	KindQueryResponse Kind = "query_response"
	KindEvents        Kind = "events"
)

type frame struct {
	Kind    Kind             `json:"kind"`
	Query   *QueryParameter  `json:"query,omitempty"`
	Header  *command.Header  `json:"header,omitempty"`
	Command *command.Payload `json:"command,omitempty"`
	Result  *QueryResult     `json:"result,omitempty"`
	Events  []event.Envelope `json:"events,omitempty"`
}

// EncodeOutbound renders an outbound message as a JSON frame.
func EncodeOutbound(msg Outbound) ([]byte, error) {
	var f frame
	switch m := msg.(type) {
	case Query:
		f = frame{Kind: KindQuery, Query: &m.Parameter}
	case Command:
		payload, err := command.Encode(m.Command)
		if err != nil {
			return nil, err
		}
		f = frame{Kind: KindCommand, Header: &m.Header, Command: &payload}
	case nil:
		return nil, ErrMessageRequired
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, msg)
	}
	return json.Marshal(f)
}

// DecodeOutbound parses a frame produced by EncodeOutbound.
func DecodeOutbound(data []byte) (Outbound, error) {
	f, err := parse(data)
	if err != nil {
		return nil, err
	}
	switch f.Kind {
	case KindQuery:
		if f.Query == nil {
			return nil, fmt.Errorf("%w: query without parameter", ErrMalformed)
		}
		if err := f.Query.validate(); err != nil {
			return nil, err
		}
		return Query{Parameter: *f.Query}, nil
	case KindCommand:
		if f.Header == nil || f.Command == nil {
			return nil, fmt.Errorf("%w: command without header or body", ErrMalformed)
		}
		cmd, err := command.Decode(*f.Command)
		if err != nil {
			return nil, err
		}
		return Command{Header: *f.Header, Command: cmd}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, f.Kind)
}

// EncodeInbound renders an inbound message as a JSON frame.
func EncodeInbound(msg Inbound) ([]byte, error) {
	var f frame
	switch m := msg.(type) {
	case Connected:
		f = frame{Kind: KindConnected}
	case QueryResponse:
		f = frame{Kind: KindQueryResponse, Result: &m.Result}
	case Events:
		envelopes, err := event.EncodeAll(m.Events)
		if err != nil {
			return nil, err
		}
		f = frame{Kind: KindEvents, Header: &m.Header, Events: envelopes}
	case nil:
		return nil, ErrMessageRequired
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, msg)
	}
	return json.Marshal(f)
}

// DecodeInbound parses a frame produced by EncodeInbound.
func DecodeInbound(data []byte) (Inbound, error) {
	f, err := parse(data)
	if err != nil {
		return nil, err
	}
	switch f.Kind {
	case KindConnected:
		return Connected{}, nil
	case KindQueryResponse:
		if f.Result == nil {
			return QueryResponse{Result: NotHandled()}, nil
		}
		if err := f.Result.validate(); err != nil {
			return nil, err
		}
		return QueryResponse{Result: *f.Result}, nil
	case KindEvents:
		if f.Header == nil {
			return nil, fmt.Errorf("%w: events without header", ErrMalformed)
		}
		events, err := event.DecodeAll(f.Events)
		if err != nil {
			return nil, err
		}
		return Events{Header: *f.Header, Events: events}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, f.Kind)
}

func parse(data []byte) (frame, error) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return frame{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return f, nil
}

func (p QueryParameter) validate() error {
	switch p.Kind {
	case QueryConference:
		if p.ConferenceID.IsZero() {
			return fmt.Errorf("%w: conference query without id", ErrMalformed)
		}
		return nil
	case QueryConferences, QueryOrganizers:
		return nil
	}
	return fmt.Errorf("%w: query parameter %q", ErrMalformed, p.Kind)
}

func (r QueryResult) validate() error {
	if !r.Handled {
		return nil
	}
	switch r.Type {
	case ResultConference:
		if r.Conference == nil {
			return fmt.Errorf("%w: conference result without conference", ErrMalformed)
		}
		return nil
	case ResultConferences, ResultOrganizers, ResultConferenceNotFound:
		return nil
	}
	return fmt.Errorf("%w: result type %q", ErrMalformed, r.Type)
}
