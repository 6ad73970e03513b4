// Package planner parses planner command flags and runs an interactive
// planning session against the event log.
package planner

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	entrypoint "github.com/louisbranch/confplan/internal/platform/cmd"
	"github.com/louisbranch/confplan/internal/services/planner/client/session"
	"github.com/louisbranch/confplan/internal/services/planner/client/transaction"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/transport/websocket"
	"github.com/louisbranch/confplan/internal/services/planner/wire"
)

// Config holds planner command configuration.
type Config struct {
	URL        string `env:"CONFPLAN_PLANNER_URL" envDefault:"ws://localhost:8090/ws"`
	Conference string `env:"CONFPLAN_PLANNER_CONFERENCE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.URL, "url", cfg.URL, "The eventlog websocket URL")
	fs.StringVar(&cfg.Conference, "conference", cfg.Conference, "A conference id to open on connect")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.Conference) != "" {
		if _, err := conference.ParseID(cfg.Conference); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// Run connects to the event log and reads planner commands from in until it
// is exhausted or ctx ends. Views are rendered to out.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePlanner, func(ctx context.Context) error {
		return run(ctx, cfg, in, out)
	})
}

func run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := websocket.NewClient(cfg.URL)
	screen := &renderer{out: out}
	loop := session.NewLoop(session.NewModel(transaction.RandomSource()), client,
		session.WithObserver(screen.render))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(gctx) })
	g.Go(func() error { return client.Run(gctx, loop.Deliver) })

	if value := strings.TrimSpace(cfg.Conference); value != "" {
		id, err := conference.ParseID(value)
		if err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		if err := loop.Dispatch(gctx, session.Query{Parameter: wire.ConferenceQuery(id)}); err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
	}

	// Reading stdin cannot be interrupted, so it stays outside the group.
	go func() {
		defer cancel()
		readCommands(gctx, in, loop, out)
	}()

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func readCommands(ctx context.Context, in io.Reader, loop *session.Loop, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		msg, err := ParseLine(scanner.Text())
		if errors.Is(err, ErrQuit) {
			return
		}
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if msg == nil {
			continue
		}
		if err := loop.Dispatch(ctx, msg); err != nil {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("read commands: %v", err)
	}
}

// renderer prints the view whenever its summary changes.
type renderer struct {
	mu   sync.Mutex
	out  io.Writer
	last string
}

func (r *renderer) render(m session.Model) {
	text := Render(m)
	r.mu.Lock()
	defer r.mu.Unlock()
	if text == r.last {
		return
	}
	r.last = text
	fmt.Fprint(r.out, text)
}
