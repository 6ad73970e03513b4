package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownName indicates a command name with no registered variant.
	ErrUnknownName = errors.New("command name is not registered")
	// ErrPayloadInvalid indicates a payload that does not decode into its variant.
	ErrPayloadInvalid = errors.New("command payload is invalid")
	// ErrCommandRequired indicates a nil command passed to Encode.
	ErrCommandRequired = errors.New("command is required")
)

// Payload is the serialized form of one command.
type Payload struct {
	Type    Name            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var decoders = map[Name]func(json.RawMessage) (Command, error){
	NameScheduleConference:            decodeAs[ScheduleConference],
	NameChangeTitle:                   decodeAs[ChangeTitle],
	NameDecideNumberOfSlots:           decodeAs[DecideNumberOfSlots],
	NameAddOrganizerToConference:      decodeAs[AddOrganizerToConference],
	NameRemoveOrganizerFromConference: decodeAs[RemoveOrganizerFromConference],
	NameVote:                          decodeAs[Vote],
	NameRevokeVoting:                  decodeAs[RevokeVoting],
	NameFinishVotingPeriod:            decodeAs[FinishVotingPeriod],
	NameReopenVotingPeriod:            decodeAs[ReopenVotingPeriod],
}

func decodeAs[T Command](payload json.RawMessage) (Command, error) {
	var value T
	if len(payload) == 0 {
		return value, nil
	}
	if err := json.Unmarshal(payload, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// Names returns every registered command name, sorted.
func Names() []Name {
	names := make([]Name, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Encode serializes a command.
func Encode(cmd Command) (Payload, error) {
	if cmd == nil {
		return Payload{}, ErrCommandRequired
	}
	data, err := json.Marshal(cmd)
	if err != nil {
		return Payload{}, fmt.Errorf("encode %s: %w", cmd.Name(), err)
	}
	return Payload{Type: cmd.Name(), Payload: data}, nil
}

// Decode parses a serialized command back into its variant.
func Decode(p Payload) (Command, error) {
	decode, ok := decoders[p.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, p.Type)
	}
	cmd, err := decode(p.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPayloadInvalid, p.Type, err)
	}
	return cmd, nil
}
