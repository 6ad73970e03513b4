package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEventsMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(EventsFS, "events")
	if err != nil {
		t.Fatalf("read events migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected events migrations to be embedded")
	}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".sql") {
			t.Fatalf("unexpected migration file %q", entry.Name())
		}
	}
}
