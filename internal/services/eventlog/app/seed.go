package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/louisbranch/confplan/internal/platform/id"
	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
)

// demoConference is the stream seeded into an empty log.
var demoConference = conference.MustParseID("6f1c2b9a-4d3e-4a7b-8c5d-0e9f1a2b3c4d")

var demoOrganizers = []conference.Organizer{
	{ID: uuid.MustParse("0d4b8f4e-1c1a-4e5e-9f0a-3b7c2d1e0f11"), Firstname: "Ada", Lastname: "Lovelace"},
	{ID: uuid.MustParse("5a6f7e8d-2b3c-4d5e-8f90-1a2b3c4d5e22"), Firstname: "Grace", Lastname: "Hopper"},
	{ID: uuid.MustParse("9e8d7c6b-5a4f-4e3d-a2c1-0b9a8f7e6d33"), Firstname: "Ken", Lastname: "Thompson"},
}

// Seed registers demo organizers and schedules a demo conference when the
// log has no streams yet. Running it again is a no-op.
func Seed(ctx context.Context, service *Service) error {
	streams, err := service.store.ListStreams(ctx)
	if err != nil {
		return fmt.Errorf("list streams: %w", err)
	}
	if len(streams) > 0 {
		return nil
	}
	for _, o := range demoOrganizers {
		if err := service.RegisterOrganizer(ctx, o); err != nil {
			return fmt.Errorf("register organizer %s: %w", o.Name(), err)
		}
	}

	snapshot := conference.State{
		ID:                     demoConference,
		Title:                  "GopherCon Planning",
		CallForPapers:          conference.CallForPapersOpen,
		VotingPeriod:           conference.VotingPeriodInProgress,
		AvailableSlotsForTalks: 12,
		Organizers:             demoOrganizers[:2],
		Abstracts: []conference.Abstract{
			{
				ID:       uuid.MustParse("3c2b1a09-8f7e-4d6c-9b5a-4f3e2d1c0b44"),
				Text:     "Event sourcing without a framework",
				Speakers: []string{"Ada Lovelace"},
				Duration: 45,
				Type:     conference.AbstractTypeTalk,
				Status:   conference.AbstractStatusProposed,
			},
			{
				ID:       uuid.MustParse("7b6a5f4e-3d2c-4b1a-8e9f-0d1c2b3a4f55"),
				Text:     "Hands-on: what-if planning",
				Speakers: []string{"Grace Hopper", "Ken Thompson"},
				Duration: 90,
				Type:     conference.AbstractTypeHandsOn,
				Status:   conference.AbstractStatusProposed,
			},
		},
	}
	tx, err := id.NewID()
	if err != nil {
		return err
	}
	header := command.NewHeader(command.TransactionID(tx), demoConference)
	if _, err := service.HandleCommand(ctx, header, command.ScheduleConference{Conference: snapshot}); err != nil {
		return fmt.Errorf("schedule demo conference: %w", err)
	}
	return nil
}
