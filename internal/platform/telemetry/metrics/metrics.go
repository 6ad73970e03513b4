package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "confplan"

// Outcome labels for handled commands.
const (
	OutcomeAccepted  = "accepted"
	OutcomeMalformed = "malformed"
	OutcomeFailed    = "failed"
)

// Eventlog groups the collectors recorded by the authoritative event log.
type Eventlog struct {
	commands       *prometheus.CounterVec
	eventsAppended prometheus.Counter
	connections    prometheus.Gauge
	handleDuration prometheus.Histogram
}

// NewEventlog builds and registers the event log collectors. A nil
// registerer leaves the collectors unregistered, which tests rely on.
func NewEventlog(reg prometheus.Registerer) (*Eventlog, error) {
	m := &Eventlog{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "eventlog",
			Name:      "commands_total",
			Help:      "Commands handled by the event log, by command type and outcome.",
		}, []string{"type", "outcome"}),
		eventsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "eventlog",
			Name:      "events_appended_total",
			Help:      "Events appended to conference streams.",
		}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "eventlog",
			Name:      "connections",
			Help:      "Connected planner clients.",
		}),
		handleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "eventlog",
			Name:      "command_duration_seconds",
			Help:      "Time spent deciding, appending, and broadcasting one command.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.commands, m.eventsAppended, m.connections, m.handleDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CommandHandled records one handled command.
func (m *Eventlog) CommandHandled(commandType, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if commandType == "" {
		commandType = "unknown"
	}
	m.commands.WithLabelValues(commandType, outcome).Inc()
	m.handleDuration.Observe(elapsed.Seconds())
}

// EventsAppended adds n appended events.
func (m *Eventlog) EventsAppended(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.eventsAppended.Add(float64(n))
}

// ConnectionOpened increments the connection gauge.
func (m *Eventlog) ConnectionOpened() {
	if m != nil {
		m.connections.Inc()
	}
}

// ConnectionClosed decrements the connection gauge.
func (m *Eventlog) ConnectionClosed() {
	if m != nil {
		m.connections.Dec()
	}
}
