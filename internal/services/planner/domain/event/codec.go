package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownName indicates an event name with no registered variant.
	ErrUnknownName = errors.New("event name is not registered")
	// ErrPayloadInvalid indicates a payload that does not decode into its variant.
	ErrPayloadInvalid = errors.New("event payload is invalid")
	// ErrEventRequired indicates a nil event passed to Encode.
	ErrEventRequired = errors.New("event is required")
)

// Envelope is the serialized form of one event.
type Envelope struct {
	Type    Name            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// decoders maps each wire name to a function decoding its payload. Every
// variant must have an entry here.
var decoders = map[Name]func(json.RawMessage) (Event, error){
	NameConferenceScheduled:            decodeAs[ConferenceScheduled],
	NameTitleChanged:                   decodeAs[TitleChanged],
	NameNumberOfSlotsDecided:           decodeAs[NumberOfSlotsDecided],
	NameOrganizerAddedToConference:     decodeAs[OrganizerAddedToConference],
	NameOrganizerRemovedFromConference: decodeAs[OrganizerRemovedFromConference],
	NameVotingWasIssued:                decodeAs[VotingWasIssued],
	NameVotingWasRevoked:               decodeAs[VotingWasRevoked],
	NameVotingPeriodWasFinished:        decodeAs[VotingPeriodWasFinished],
	NameVotingPeriodWasReopened:        decodeAs[VotingPeriodWasReopened],
}

func decodeAs[T Event](payload json.RawMessage) (Event, error) {
	var value T
	if len(payload) == 0 {
		return value, nil
	}
	if err := json.Unmarshal(payload, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// Names returns every registered event name, sorted.
func Names() []Name {
	names := make([]Name, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Encode serializes an event into its envelope.
func Encode(evt Event) (Envelope, error) {
	if evt == nil {
		return Envelope{}, ErrEventRequired
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s: %w", evt.Name(), err)
	}
	return Envelope{Type: evt.Name(), Payload: payload}, nil
}

// Decode parses an envelope back into its variant.
func Decode(env Envelope) (Event, error) {
	decode, ok := decoders[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, env.Type)
	}
	evt, err := decode(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPayloadInvalid, env.Type, err)
	}
	return evt, nil
}

// EncodeAll serializes events in order.
func EncodeAll(events []Event) ([]Envelope, error) {
	out := make([]Envelope, 0, len(events))
	for _, evt := range events {
		env, err := Encode(evt)
		if err != nil {
			return nil, err
		}
		out = append(out, env)
	}
	return out, nil
}

// DecodeAll parses envelopes in order.
func DecodeAll(envs []Envelope) ([]Event, error) {
	out := make([]Event, 0, len(envs))
	for _, env := range envs {
		evt, err := Decode(env)
		if err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, nil
}
