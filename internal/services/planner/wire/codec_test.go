package wire

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

var testConference = conference.MustParseID("5f2b1c0e-8a7d-4f3b-9c21-1d0e6a7b8c9d")

func TestEncodeOutboundQueryShape(t *testing.T) {
	data, err := EncodeOutbound(Query{Parameter: ConferenceQuery(testConference)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"kind":"query","query":{"parameter":"conference","conference_id":"5f2b1c0e-8a7d-4f3b-9c21-1d0e6a7b8c9d"}}`
	if string(data) != want {
		t.Fatalf("frame = %s, want %s", data, want)
	}

	data, err = EncodeOutbound(Query{Parameter: OrganizersQuery()})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if want := `{"kind":"query","query":{"parameter":"organizers"}}`; string(data) != want {
		t.Fatalf("frame = %s, want %s", data, want)
	}
}

func TestOutboundCommandRoundTrip(t *testing.T) {
	msg := Command{
		Header:  command.NewHeader("tx-1", testConference),
		Command: command.DecideNumberOfSlots{Slots: 5},
	}
	data, err := EncodeOutbound(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), `"type":"decide_number_of_slots"`) {
		t.Fatalf("frame = %s, want snake_case command type", data)
	}
	got, err := DecodeOutbound(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, msg) {
		t.Fatalf("decoded = %#v, want %#v", got, msg)
	}
}

func TestInboundEventsRoundTrip(t *testing.T) {
	msg := Events{
		Header: command.NewHeader("tx-2", testConference),
		Events: []event.Event{
			event.TitleChanged{Title: "GopherCon EU"},
			event.OrganizerAddedToConference{Organizer: conference.Organizer{ID: uuid.New(), Firstname: "Rob"}},
		},
	}
	data, err := EncodeInbound(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeInbound(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, msg) {
		t.Fatalf("decoded = %#v, want %#v", got, msg)
	}
}

func TestInboundQueryResponses(t *testing.T) {
	found := ConferenceFound(conference.State{ID: testConference, Title: "dotGo"})
	tests := []struct {
		name string
		msg  Inbound
	}{
		{name: "connected", msg: Connected{}},
		{name: "not handled", msg: QueryResponse{Result: NotHandled()}},
		{name: "not found", msg: QueryResponse{Result: ConferenceNotFound()}},
		{name: "conference", msg: QueryResponse{Result: found}},
		{name: "organizers", msg: QueryResponse{Result: OrganizersFound([]conference.Organizer{{ID: uuid.New(), Lastname: "Pike"}})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeInbound(tt.msg)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := DecodeInbound(data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got, tt.msg) {
				t.Fatalf("decoded = %#v, want %#v", got, tt.msg)
			}
		})
	}
}

func TestNotHandledShape(t *testing.T) {
	data, err := EncodeInbound(QueryResponse{Result: NotHandled()})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if want := `{"kind":"query_response","result":{"handled":false}}`; string(data) != want {
		t.Fatalf("frame = %s, want %s", data, want)
	}
}

func TestDecodeRejectsBadFrames(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		inbound bool
		want    error
	}{
		{name: "not json", data: `{`, want: ErrMalformed},
		{name: "unknown kind", data: `{"kind":"ping"}`, want: ErrUnknownKind},
		{name: "inbound kind outbound", data: `{"kind":"connected"}`, want: ErrUnknownKind},
		{name: "query without parameter", data: `{"kind":"query"}`, want: ErrMalformed},
		{name: "conference query without id", data: `{"kind":"query","query":{"parameter":"conference"}}`, want: ErrMalformed},
		{name: "unknown parameter", data: `{"kind":"query","query":{"parameter":"talks"}}`, want: ErrMalformed},
		{name: "braced id", data: `{"kind":"query","query":{"parameter":"conference","conference_id":"{5f2b1c0e-8a7d-4f3b-9c21-1d0e6a7b8c9d}"}}`, want: ErrMalformed},
		{name: "unknown command", data: `{"kind":"command","header":{"transaction_id":"t","stream_id":"s"},"command":{"type":"cancel"}}`, want: command.ErrUnknownName},
		{name: "unknown event", inbound: true, data: `{"kind":"events","header":{"transaction_id":"t","stream_id":"s"},"events":[{"type":"talk_moved"}]}`, want: event.ErrUnknownName},
		{name: "events without header", inbound: true, data: `{"kind":"events","events":[]}`, want: ErrMalformed},
		{name: "conference result without body", inbound: true, data: `{"kind":"query_response","result":{"handled":true,"type":"conference"}}`, want: ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.inbound {
				_, err = DecodeInbound([]byte(tt.data))
			} else {
				_, err = DecodeOutbound([]byte(tt.data))
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEncodeRequiresMessage(t *testing.T) {
	if _, err := EncodeOutbound(nil); !errors.Is(err, ErrMessageRequired) {
		t.Fatalf("outbound err = %v, want ErrMessageRequired", err)
	}
	if _, err := EncodeInbound(nil); !errors.Is(err, ErrMessageRequired) {
		t.Fatalf("inbound err = %v, want ErrMessageRequired", err)
	}
}

func TestEventsFrameIsValidJSON(t *testing.T) {
	data, err := EncodeInbound(Events{Header: command.NewHeader("tx", testConference), Events: []event.Event{event.VotingPeriodWasFinished{}}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["kind"] != "events" {
		t.Fatalf("kind = %v, want events", raw["kind"])
	}
}
