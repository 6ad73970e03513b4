package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/louisbranch/confplan/internal/services/planner/client/session"
	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/wire"
)

var (
	// ErrQuit asks the reader to stop.
	ErrQuit = errors.New("quit")
	// ErrUnknownInput indicates a line naming no planner command.
	ErrUnknownInput = errors.New("unknown planner command")
	// ErrUsage indicates a planner command with bad arguments.
	ErrUsage = errors.New("usage")
)

// Usage lists the planner commands.
const Usage = `commands:
  list | organizers | open <conference-id>
  schedule <title>
  title <text> | slots <n> | finish | reopen
  add-organizer <organizer-id> <firstname> [lastname] | remove-organizer <organizer-id>
  vote <abstract-id> <organizer-id> <0|1|2> | veto <abstract-id> <organizer-id>
  revoke <abstract-id> <organizer-id>
  whatif | makeitso | help | quit
`

// ParseLine turns one input line into a session message. Blank lines and
// help yield a nil message.
func ParseLine(line string) (session.Msg, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	name, args := fields[0], fields[1:]
	switch name {
	case "help":
		return nil, fmt.Errorf("%w\n%s", ErrUsage, Usage)
	case "quit", "exit":
		return nil, ErrQuit
	case "list":
		return session.Query{Parameter: wire.ConferencesQuery()}, nil
	case "organizers":
		return session.Query{Parameter: wire.OrganizersQuery()}, nil
	case "open":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: open <conference-id>", ErrUsage)
		}
		id, err := conference.ParseID(args[0])
		if err != nil {
			return nil, err
		}
		return session.Query{Parameter: wire.ConferenceQuery(id)}, nil
	case "schedule":
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: schedule <title>", ErrUsage)
		}
		return issue(command.ScheduleConference{Conference: conference.State{
			ID:            conference.NewID(),
			Title:         strings.Join(args, " "),
			CallForPapers: conference.CallForPapersNotOpened,
			VotingPeriod:  conference.VotingPeriodInProgress,
		}}), nil
	case "title":
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: title <text>", ErrUsage)
		}
		return issue(command.ChangeTitle{Title: strings.Join(args, " ")}), nil
	case "slots":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: slots <n>", ErrUsage)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: slots must be a non-negative number", ErrUsage)
		}
		return issue(command.DecideNumberOfSlots{Slots: n}), nil
	case "finish":
		return issue(command.FinishVotingPeriod{}), nil
	case "reopen":
		return issue(command.ReopenVotingPeriod{}), nil
	case "add-organizer":
		if len(args) < 2 || len(args) > 3 {
			return nil, fmt.Errorf("%w: add-organizer <organizer-id> <firstname> [lastname]", ErrUsage)
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: organizer id: %v", ErrUsage, err)
		}
		organizer := conference.Organizer{ID: id, Firstname: args[1]}
		if len(args) == 3 {
			organizer.Lastname = args[2]
		}
		return issue(command.AddOrganizerToConference{Organizer: organizer}), nil
	case "remove-organizer":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: remove-organizer <organizer-id>", ErrUsage)
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: organizer id: %v", ErrUsage, err)
		}
		return issue(command.RemoveOrganizerFromConference{Organizer: conference.Organizer{ID: id}}), nil
	case "vote":
		if len(args) != 3 {
			return nil, fmt.Errorf("%w: vote <abstract-id> <organizer-id> <0|1|2>", ErrUsage)
		}
		abstractID, organizerID, err := votingIDs(args)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(args[2])
		if err != nil || !conference.Points(n).Valid() {
			return nil, fmt.Errorf("%w: points must be 0, 1 or 2", ErrUsage)
		}
		return issue(command.Vote{Voting: conference.Vote(abstractID, organizerID, conference.Points(n))}), nil
	case "veto":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: veto <abstract-id> <organizer-id>", ErrUsage)
		}
		abstractID, organizerID, err := votingIDs(args)
		if err != nil {
			return nil, err
		}
		return issue(command.Vote{Voting: conference.Veto(abstractID, organizerID)}), nil
	case "revoke":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: revoke <abstract-id> <organizer-id>", ErrUsage)
		}
		abstractID, organizerID, err := votingIDs(args)
		if err != nil {
			return nil, err
		}
		return issue(command.RevokeVoting{Voting: conference.Voting{AbstractID: abstractID, OrganizerID: organizerID}}), nil
	case "whatif":
		return session.ToggleWhatIf{}, nil
	case "makeitso":
		return session.MakeItSo{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownInput, name)
}

func issue(cmd command.Command) session.Msg {
	return session.Issue{Command: cmd}
}

func votingIDs(args []string) (uuid.UUID, uuid.UUID, error) {
	abstractID, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: abstract id: %v", ErrUsage, err)
	}
	organizerID, err := uuid.Parse(args[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: organizer id: %v", ErrUsage, err)
	}
	return abstractID, organizerID, nil
}
