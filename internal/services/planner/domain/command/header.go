package command

import (
	"errors"
	"strings"

	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
)

// ErrTransactionIDRequired indicates a header without a transaction id.
var ErrTransactionIDRequired = errors.New("transaction id is required")

// TransactionID is an opaque token correlating one outbound command with its
// confirmation. Only identity comparison is meaningful.
type TransactionID string

// Header addresses a command to a stream under a transaction.
type Header struct {
	TransactionID TransactionID `json:"transaction_id"`
	StreamID      string        `json:"stream_id"`
}

// NewHeader builds the header for a command on a conference stream.
func NewHeader(tx TransactionID, stream conference.ID) Header {
	return Header{TransactionID: tx, StreamID: stream.String()}
}

// Conference parses the stream id back into a conference id.
func (h Header) Conference() (conference.ID, error) {
	return conference.ParseID(h.StreamID)
}

// Validate checks that the header can be correlated and routed.
func (h Header) Validate() error {
	if strings.TrimSpace(string(h.TransactionID)) == "" {
		return ErrTransactionIDRequired
	}
	_, err := h.Conference()
	return err
}

// Envelope pairs a command with the header it is (or will be) sent under.
type Envelope struct {
	Header  Header
	Command Command
}
