package planner

import (
	"fmt"
	"strings"

	"github.com/louisbranch/confplan/internal/services/planner/client/session"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

// Render formats the session view as plain text.
func Render(m session.Model) string {
	var b strings.Builder
	view, ok := m.View()
	if !ok {
		fmt.Fprintf(&b, "no conference open (%d known, %d organizers)\n", len(m.Conferences), len(m.Organizers))
		for _, c := range m.Conferences {
			fmt.Fprintf(&b, "  %s  %s\n", c.ID, c.Title)
		}
		return b.String()
	}

	mode := "live"
	if branch, simulating := m.Mode.Branch(); simulating {
		mode = fmt.Sprintf("what-if, %d pending", len(branch.Pending))
	}
	fmt.Fprintf(&b, "%s  %q [%s]\n", view.ID, view.Title, mode)
	fmt.Fprintf(&b, "  slots: %d  call for papers: %s  voting: %s\n",
		view.AvailableSlotsForTalks, view.CallForPapers, view.VotingPeriod)
	for _, o := range view.Organizers {
		fmt.Fprintf(&b, "  organizer %s  %s\n", o.ID, o.Name())
	}
	for _, a := range view.Abstracts {
		fmt.Fprintf(&b, "  abstract %s  %s (%s, %s)\n", a.ID, a.Text, a.Type, a.Status)
	}
	for _, v := range view.Votings {
		fmt.Fprintf(&b, "  %s\n", v)
	}
	if n := m.Transactions.Len(); n > 0 {
		fmt.Fprintf(&b, "  awaiting %d confirmation(s)\n", n)
	}
	for _, entry := range m.Notifications.Entries() {
		fmt.Fprintf(&b, "  * %s [%s]\n", describe(entry.Event), entry.Phase)
	}
	if m.LastError != nil {
		fmt.Fprintf(&b, "  error: %v\n", m.LastError)
	}
	return b.String()
}

func describe(evt event.Event) string {
	switch e := evt.(type) {
	case event.ConferenceScheduled:
		return "conference scheduled: " + e.Conference.Title
	case event.TitleChanged:
		return "title changed to " + e.Title
	case event.NumberOfSlotsDecided:
		return fmt.Sprintf("slots set to %d", e.Slots)
	case event.OrganizerAddedToConference:
		return "organizer added: " + e.Organizer.Name()
	case event.OrganizerRemovedFromConference:
		return "organizer removed: " + e.Organizer.ID.String()
	case event.VotingWasIssued:
		return "voting issued: " + e.Voting.String()
	case event.VotingWasRevoked:
		return "voting revoked: " + e.Voting.String()
	case event.VotingPeriodWasFinished:
		return "voting period finished"
	case event.VotingPeriodWasReopened:
		return "voting period reopened"
	case nil:
		return "unknown event"
	}
	return string(evt.Name())
}
