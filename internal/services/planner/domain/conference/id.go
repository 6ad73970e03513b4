package conference

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidID indicates a string that is not a canonical conference id.
var ErrInvalidID = errors.New("invalid conference id")

// canonicalIDLength is the length of the hyphenated 8-4-4-4-12 form.
const canonicalIDLength = 36

// ID identifies a conference aggregate. Its canonical string form doubles as
// the event stream id.
type ID uuid.UUID

// NewID returns a random conference id.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses the canonical string form produced by ID.String. Braced,
// URN-prefixed and unhyphenated forms are rejected.
func ParseID(value string) (ID, error) {
	if len(value) != canonicalIDLength {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, value)
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, value)
	}
	return ID(parsed), nil
}

// MustParseID is ParseID for constants and tests.
func MustParseID(value string) ID {
	id, err := ParseID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical lower-case form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id == ID{}
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseID.
func (id *ID) UnmarshalText(data []byte) error {
	parsed, err := ParseID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
