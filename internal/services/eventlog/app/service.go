package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/confplan/internal/platform/telemetry/metrics"
	"github.com/louisbranch/confplan/internal/services/eventlog/storage"
	"github.com/louisbranch/confplan/internal/services/planner/domain/command"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/engine"
	"github.com/louisbranch/confplan/internal/services/planner/domain/projection"
	"github.com/louisbranch/confplan/internal/services/planner/wire"
)

const tracerName = "confplan/eventlog"

var (
	// ErrConferenceNotFound indicates a command for a stream with no events.
	ErrConferenceNotFound = errors.New("conference not found")
	// ErrStreamMismatch indicates a ScheduleConference whose snapshot id
	// differs from the header stream.
	ErrStreamMismatch = errors.New("command stream does not match its conference")
)

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithMetrics records command outcomes into m.
func WithMetrics(m *metrics.Eventlog) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithTracer sets the tracer for command spans.
func WithTracer(tracer trace.Tracer) ServiceOption {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// Service is the single writer of the event log.
type Service struct {
	store   storage.Store
	hub     *hub
	metrics *metrics.Eventlog
	tracer  trace.Tracer

	// mu serializes replay, decide, and append per command.
	mu sync.Mutex
}

// NewService returns a service persisting into store.
func NewService(store storage.Store, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	s := &Service{
		store:  store,
		hub:    newHub(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// HandleCommand decides cmd against its stream, appends the events, and
// broadcasts the confirmation batch to every subscriber.
func (s *Service) HandleCommand(ctx context.Context, header command.Header, cmd command.Command) (wire.Events, error) {
	started := time.Now()
	name := ""
	if cmd != nil {
		name = string(cmd.Name())
	}
	ctx, span := s.tracer.Start(ctx, "eventlog.handle_command",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("confplan.command", name),
			attribute.String("confplan.transaction_id", string(header.TransactionID)),
			attribute.String("confplan.stream_id", header.StreamID),
		))
	defer span.End()

	batch, err := s.handle(ctx, header, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.CommandHandled(name, metrics.OutcomeFailed, time.Since(started))
		return wire.Events{}, err
	}
	s.metrics.CommandHandled(name, metrics.OutcomeAccepted, time.Since(started))
	s.metrics.EventsAppended(len(batch.Events))
	span.SetAttributes(attribute.Int("confplan.events", len(batch.Events)))
	return batch, nil
}

func (s *Service) handle(ctx context.Context, header command.Header, cmd command.Command) (wire.Events, error) {
	if err := header.Validate(); err != nil {
		return wire.Events{}, err
	}
	stream, _ := header.Conference()

	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.store.ListEvents(ctx, stream)
	if err != nil {
		return wire.Events{}, fmt.Errorf("load stream %s: %w", stream, err)
	}
	if schedule, ok := cmd.(command.ScheduleConference); ok {
		if schedule.Conference.ID != stream {
			return wire.Events{}, fmt.Errorf("%w: %s", ErrStreamMismatch, stream)
		}
	} else if len(history) == 0 {
		return wire.Events{}, fmt.Errorf("%w: %s", ErrConferenceNotFound, stream)
	}

	state, err := projection.Replay(conference.State{}, history)
	if err != nil {
		return wire.Events{}, fmt.Errorf("replay stream %s: %w", stream, err)
	}
	result, err := engine.Handle(state, cmd)
	if err != nil {
		return wire.Events{}, err
	}
	if err := s.store.AppendEvents(ctx, stream, result.Events); err != nil {
		return wire.Events{}, fmt.Errorf("append stream %s: %w", stream, err)
	}

	batch := wire.Events{Header: header, Events: result.Events}
	s.hub.broadcast(batch)
	return batch, nil
}

// Query answers a query from the current store contents.
func (s *Service) Query(ctx context.Context, param wire.QueryParameter) (wire.QueryResult, error) {
	switch param.Kind {
	case wire.QueryConference:
		state, found, err := s.conference(ctx, param.ConferenceID)
		if err != nil {
			return wire.NotHandled(), err
		}
		if !found {
			return wire.ConferenceNotFound(), nil
		}
		return wire.ConferenceFound(state), nil
	case wire.QueryConferences:
		streams, err := s.store.ListStreams(ctx)
		if err != nil {
			return wire.NotHandled(), fmt.Errorf("list streams: %w", err)
		}
		list := make([]conference.State, 0, len(streams))
		for _, id := range streams {
			state, found, err := s.conference(ctx, id)
			if err != nil {
				return wire.NotHandled(), err
			}
			if found {
				list = append(list, state)
			}
		}
		return wire.ConferencesFound(list), nil
	case wire.QueryOrganizers:
		organizers, err := s.store.ListOrganizers(ctx)
		if err != nil {
			return wire.NotHandled(), fmt.Errorf("list organizers: %w", err)
		}
		return wire.OrganizersFound(organizers), nil
	}
	return wire.NotHandled(), nil
}

// RegisterOrganizer adds or updates an organizer in the registry.
func (s *Service) RegisterOrganizer(ctx context.Context, organizer conference.Organizer) error {
	return s.store.PutOrganizer(ctx, organizer)
}

func (s *Service) conference(ctx context.Context, id conference.ID) (conference.State, bool, error) {
	history, err := s.store.ListEvents(ctx, id)
	if err != nil {
		return conference.State{}, false, fmt.Errorf("load stream %s: %w", id, err)
	}
	if len(history) == 0 {
		return conference.State{}, false, nil
	}
	state, err := projection.Replay(conference.State{}, history)
	if err != nil {
		return conference.State{}, false, fmt.Errorf("replay stream %s: %w", id, err)
	}
	return state, true, nil
}
