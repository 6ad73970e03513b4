package memory

import (
	"testing"

	"github.com/louisbranch/confplan/internal/services/eventlog/storage"
	"github.com/louisbranch/confplan/internal/services/eventlog/storage/storagetest"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store { return New() })
}
