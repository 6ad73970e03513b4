package conference

import (
	"testing"

	"github.com/google/uuid"
)

func TestWithOrganizerIsSetUnion(t *testing.T) {
	alice := Organizer{ID: uuid.New(), Firstname: "Alice", Lastname: "Liddell"}
	state := State{}.WithOrganizer(alice).WithOrganizer(alice)
	if len(state.Organizers) != 1 {
		t.Fatalf("organizers = %d, want 1", len(state.Organizers))
	}
	if !state.HasOrganizer(alice.ID) {
		t.Fatal("expected alice to be an organizer")
	}
}

func TestWithOrganizerDoesNotAlias(t *testing.T) {
	alice := Organizer{ID: uuid.New(), Firstname: "Alice"}
	bob := Organizer{ID: uuid.New(), Firstname: "Bob"}
	carol := Organizer{ID: uuid.New(), Firstname: "Carol"}

	base := State{Organizers: make([]Organizer, 1, 8)}
	base.Organizers[0] = alice
	withBob := base.WithOrganizer(bob)
	withCarol := base.WithOrganizer(carol)

	if withBob.Organizers[1] != bob {
		t.Fatalf("organizer = %v, want bob", withBob.Organizers[1])
	}
	if withCarol.Organizers[1] != carol {
		t.Fatalf("organizer = %v, want carol", withCarol.Organizers[1])
	}
	if len(base.Organizers) != 1 {
		t.Fatalf("base organizers = %d, want 1", len(base.Organizers))
	}
}

func TestWithoutOrganizer(t *testing.T) {
	alice := Organizer{ID: uuid.New(), Firstname: "Alice"}
	bob := Organizer{ID: uuid.New(), Firstname: "Bob"}
	base := State{}.WithOrganizer(alice).WithOrganizer(bob)

	removed := base.WithoutOrganizer(alice.ID)
	if removed.HasOrganizer(alice.ID) {
		t.Fatal("expected alice to be removed")
	}
	if !base.HasOrganizer(alice.ID) {
		t.Fatal("expected base to keep alice")
	}
	if unchanged := removed.WithoutOrganizer(alice.ID); len(unchanged.Organizers) != 1 {
		t.Fatalf("organizers = %d, want 1", len(unchanged.Organizers))
	}
}

func TestWithVotingReplacesSameIdentity(t *testing.T) {
	abstractID, organizerID := uuid.New(), uuid.New()
	state := State{}.WithVoting(Vote(abstractID, organizerID, PointsOne))
	state = state.WithVoting(Vote(abstractID, organizerID, PointsTwo))

	if len(state.Votings) != 1 {
		t.Fatalf("votings = %d, want 1", len(state.Votings))
	}
	got, ok := state.VotingFor(abstractID, organizerID)
	if !ok || got.Points != PointsTwo {
		t.Fatalf("voting = %v, want two points", got)
	}

	vetoed := state.WithVoting(Veto(abstractID, organizerID))
	if got, _ := vetoed.VotingFor(abstractID, organizerID); got.Kind != VotingKindVeto {
		t.Fatalf("kind = %s, want veto", got.Kind)
	}
	if got, _ := state.VotingFor(abstractID, organizerID); got.Kind != VotingKindVote {
		t.Fatalf("original kind = %s, want vote", got.Kind)
	}
}

func TestWithoutVoting(t *testing.T) {
	abstractID, organizerID := uuid.New(), uuid.New()
	state := State{}.WithVoting(Vote(abstractID, organizerID, PointsOne))

	revoked := state.WithoutVoting(Veto(abstractID, organizerID))
	if len(revoked.Votings) != 0 {
		t.Fatalf("votings = %d, want 0", len(revoked.Votings))
	}
	if len(state.Votings) != 1 {
		t.Fatalf("original votings = %d, want 1", len(state.Votings))
	}
}

func TestCloneIsDeep(t *testing.T) {
	state := State{
		Title:     "GopherCon",
		Abstracts: []Abstract{{ID: uuid.New(), Speakers: []string{"Rob"}}},
	}
	clone := state.Clone()
	clone.Abstracts[0].Speakers[0] = "Ken"
	if state.Abstracts[0].Speakers[0] != "Rob" {
		t.Fatalf("speaker = %s, want Rob", state.Abstracts[0].Speakers[0])
	}
	if state.Equal(clone) {
		t.Fatal("expected modified clone to differ")
	}
	if !state.Equal(state.Clone()) {
		t.Fatal("expected clone to equal original")
	}
}

func TestOrganizerName(t *testing.T) {
	tests := []struct {
		organizer Organizer
		want      string
	}{
		{Organizer{Firstname: "Ada", Lastname: "Lovelace"}, "Ada Lovelace"},
		{Organizer{Firstname: "Ada"}, "Ada"},
		{Organizer{Lastname: "Lovelace"}, "Lovelace"},
	}
	for _, tt := range tests {
		if got := tt.organizer.Name(); got != tt.want {
			t.Fatalf("Name() = %q, want %q", got, tt.want)
		}
	}
}

func TestPointsValid(t *testing.T) {
	for _, p := range []Points{PointsZero, PointsOne, PointsTwo} {
		if !p.Valid() {
			t.Fatalf("expected %d to be valid", p)
		}
	}
	if Points(3).Valid() || Points(-1).Valid() {
		t.Fatal("expected out of range points to be invalid")
	}
}
