package session

import (
	"time"

	"github.com/louisbranch/confplan/internal/services/planner/client/notification"
	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/wire"
)

// Msg is anything Update reacts to.
type Msg interface {
	isMsg()
}

// Inbound wraps a message delivered by the transport.
type Inbound struct {
	Message wire.Inbound
}

// Query asks the event log for state. A conference query switches the view
// once its response arrives.
type Query struct {
	Parameter wire.QueryParameter
}

// Issue runs a domain command against the active conference.
type Issue struct {
	Command command.Command
}

// ToggleWhatIf starts a branch while live and discards it while simulating.
type ToggleWhatIf struct{}

// MakeItSo commits the running branch.
type MakeItSo struct{}

// NotificationElapsed fires when a notification's phase timeout is over.
type NotificationElapsed struct {
	Key   notification.Key
	Phase notification.Phase
}

func (Inbound) isMsg()             {}
func (Query) isMsg()               {}
func (Issue) isMsg()               {}
func (ToggleWhatIf) isMsg()        {}
func (MakeItSo) isMsg()            {}
func (NotificationElapsed) isMsg() {}

// Effect is work Update asks the loop to perform.
type Effect interface {
	isEffect()
}

// SendQuery sends a query to the event log.
type SendQuery struct {
	Parameter wire.QueryParameter
}

// SendCommand sends a command under its header.
type SendCommand struct {
	Header  command.Header
	Command command.Command
}

// Schedule delivers Msg back to the session after a delay.
type Schedule struct {
	After time.Duration
	Msg   Msg
}

func (SendQuery) isEffect()   {}
func (SendCommand) isEffect() {}
func (Schedule) isEffect()    {}
