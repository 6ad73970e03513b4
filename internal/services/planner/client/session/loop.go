package session

import (
	"context"
	"errors"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/confplan/internal/services/planner/wire"
)

const (
	tracerName       = "confplan/session"
	defaultInboxSize = 64
)

// ErrStopped indicates a dispatch to a loop that is no longer running.
var ErrStopped = errors.New("session loop stopped")

// Transport sends outbound messages to the event log. Send must not wait
// for a reply.
type Transport interface {
	Send(ctx context.Context, msg wire.Outbound) error
}

// Timer is a pending scheduled message.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

// Option configures a Loop.
type Option func(*Loop)

// WithAfterFunc replaces time.AfterFunc, mainly for tests.
func WithAfterFunc(after AfterFunc) Option {
	return func(l *Loop) {
		if after != nil {
			l.after = after
		}
	}
}

// WithObserver calls observe with the model after every transition.
func WithObserver(observe func(Model)) Option {
	return func(l *Loop) { l.observe = observe }
}

// WithTracer sets the tracer used for outbound command spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(l *Loop) {
		if tracer != nil {
			l.tracer = tracer
		}
	}
}

// WithInboxSize sets the message buffer size.
func WithInboxSize(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.inbox = make(chan Msg, n)
		}
	}
}

// timerFired re-enters a scheduled message so the loop can forget its timer.
type timerFired struct {
	id  uint64
	msg Msg
}

func (timerFired) isMsg() {}

// Loop is the single writer of a session Model.
type Loop struct {
	model     Model
	transport Transport
	inbox     chan Msg
	done      chan struct{}
	after     AfterFunc
	observe   func(Model)
	tracer    trace.Tracer
	timers    map[uint64]Timer
	nextTimer uint64
}

// NewLoop returns a loop owning model and sending through transport.
func NewLoop(model Model, transport Transport, opts ...Option) *Loop {
	l := &Loop{
		model:     model,
		transport: transport,
		inbox:     make(chan Msg, defaultInboxSize),
		done:      make(chan struct{}),
		after: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		tracer: otel.Tracer(tracerName),
		timers: make(map[uint64]Timer),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dispatch enqueues msg. It blocks while the inbox is full.
func (l *Loop) Dispatch(ctx context.Context, msg Msg) error {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-l.done:
		return ErrStopped
	default:
	}
	select {
	case l.inbox <- msg:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Deliver enqueues a message received from the transport.
func (l *Loop) Deliver(ctx context.Context, msg wire.Inbound) error {
	return l.Dispatch(ctx, Inbound{Message: msg})
}

// Run processes messages until ctx is done or Update fails. Pending timers
// are stopped on return.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-l.inbox:
			if fired, ok := msg.(timerFired); ok {
				delete(l.timers, fired.id)
				msg = fired.msg
			}
			next, effects, err := Update(l.model, msg)
			if err != nil {
				return err
			}
			l.model = next
			if l.observe != nil {
				l.observe(next)
			}
			for _, effect := range effects {
				l.perform(ctx, effect)
			}
		}
	}
}

func (l *Loop) perform(ctx context.Context, effect Effect) {
	switch e := effect.(type) {
	case SendQuery:
		if err := l.transport.Send(ctx, wire.Query{Parameter: e.Parameter}); err != nil {
			log.Printf("send query %s: %v", e.Parameter.Kind, err)
		}
	case SendCommand:
		l.sendCommand(ctx, e)
	case Schedule:
		l.schedule(e)
	}
}

func (l *Loop) sendCommand(ctx context.Context, e SendCommand) {
	ctx, span := l.tracer.Start(ctx, "session.send_command",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("confplan.command", string(e.Command.Name())),
			attribute.String("confplan.transaction_id", string(e.Header.TransactionID)),
			attribute.String("confplan.stream_id", e.Header.StreamID),
		))
	defer span.End()
	if err := l.transport.Send(ctx, wire.Command{Header: e.Header, Command: e.Command}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Printf("send command %s (%s): %v", e.Command.Name(), e.Header.TransactionID, err)
	}
}

func (l *Loop) schedule(e Schedule) {
	id := l.nextTimer
	l.nextTimer++
	msg := timerFired{id: id, msg: e.Msg}
	l.timers[id] = l.after(e.After, func() {
		select {
		case l.inbox <- msg:
		case <-l.done:
		}
	})
}

func (l *Loop) stop() {
	close(l.done)
	for id, timer := range l.timers {
		timer.Stop()
		delete(l.timers, id)
	}
}
